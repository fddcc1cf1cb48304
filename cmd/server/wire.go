//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"context"

	"github.com/bionicotaku/lingo-services-library/internal/controllers"
	"github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-library/internal/infrastructure/database"
	"github.com/bionicotaku/lingo-services-library/internal/infrastructure/pubsub"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"
	"github.com/bionicotaku/lingo-services-library/internal/server"
	"github.com/bionicotaku/lingo-services-library/internal/services"
	"github.com/bionicotaku/lingo-services-library/internal/tasks/catalogsync"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

//go:generate go run github.com/google/wire/cmd/wire

// wireApp init kratos application.
func wireApp(context.Context, *configloader.Bundle, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		configloader.ProviderSet,
		database.ProviderSet,
		pubsub.ProviderSet,
		repositories.ProviderSet,
		services.ProviderSet,
		controllers.ProviderSet,
		catalogsync.ProvideRunner,
		server.ProviderSet,
		wire.Bind(new(services.VideoReader), new(*repositories.VideoRepository)),
		wire.Bind(new(services.VideoQueryRepo), new(*repositories.VideoRepository)),
		wire.Bind(new(services.PlaylistStore), new(*repositories.PlaylistRepository)),
		wire.Bind(new(services.SpecialPlaylistStore), new(*repositories.SpecialPlaylistRepository)),
		wire.Bind(new(services.VideoMetricsStore), new(*repositories.VideoMetricsRepository)),
		newApp,
	))
}
