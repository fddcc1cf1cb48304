// Package main 提供 catalog 同步 Runner 的独立进程入口，便于后台单独运行。
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	configloader "github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-library/internal/tasks/catalogsync"
	"github.com/go-kratos/kratos/v2/log"
)

type catalogSyncTaskApp struct {
	Runner *catalogsync.Runner
	Logger log.Logger
}

func main() {
	ctx := context.Background()

	confFlag := flag.String("conf", "", "config path or directory, eg: -conf configs/config.yaml")
	flag.Parse()

	params := configloader.Params{ConfPath: *confFlag}
	app, cleanup, err := wireCatalogSyncTask(ctx, params)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	logger := app.Logger
	if logger == nil {
		logger = log.NewStdLogger(os.Stdout)
	}
	helper := log.NewHelper(logger)

	if app.Runner == nil {
		helper.Warn("catalog sync runner disabled (missing messaging.pubsub configuration)")
		return
	}

	helper.Info("starting catalog sync runner")

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Runner.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		helper.Errorf("catalog sync runner stopped unexpectedly: %v", err)
		os.Exit(1)
	}

	helper.Info("catalog sync runner stopped")
}
