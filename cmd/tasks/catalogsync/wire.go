//go:build wireinject
// +build wireinject

// Package main 为 catalogsync 任务 CLI 提供 Wire 依赖注入定义。
package main

import (
	"context"
	"fmt"

	configloader "github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-library/internal/infrastructure/database"
	loginfra "github.com/bionicotaku/lingo-services-library/internal/infrastructure/logger"
	"github.com/bionicotaku/lingo-services-library/internal/infrastructure/pubsub"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"
	"github.com/bionicotaku/lingo-services-library/internal/tasks/catalogsync"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

//go:generate go run github.com/google/wire/cmd/wire

func wireCatalogSyncTask(context.Context, configloader.Params) (*catalogSyncTaskApp, func(), error) {
	panic(wire.Build(
		configloader.Build,
		configloader.ProviderSet,
		loginfra.ProviderSet,
		database.ProviderSet,
		pubsub.ProviderSet,
		repositories.ProviderSet,
		catalogsync.ProvideRunner,
		newCatalogSyncTaskApp,
	))
}

func newCatalogSyncTaskApp(logger log.Logger, runner *catalogsync.Runner) (*catalogSyncTaskApp, error) {
	if runner == nil {
		return &catalogSyncTaskApp{Logger: logger}, nil
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	return &catalogSyncTaskApp{
		Runner: runner,
		Logger: logger,
	}, nil
}
