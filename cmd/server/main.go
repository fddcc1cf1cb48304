// Package main 启动 library 服务：HTTP API 与 catalog 事件消费共用同一进程。
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"
	loginfra "github.com/bionicotaku/lingo-services-library/internal/infrastructure/logger"
	"github.com/bionicotaku/lingo-services-library/internal/server"

	"github.com/bionicotaku/lingo-utils/observability"
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	_ "go.uber.org/automaxprocs"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name string
	// Version is the version of the compiled software.
	Version string

	id, _ = os.Hostname()
)

func newApp(logger log.Logger, hs *http.Server, cs *server.CatalogSyncServer) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(
			hs,
			cs,
		),
	)
}

func main() {
	ctx := context.Background()

	confFlag := flag.String("conf", "", "config path or directory, eg: -conf configs/config.yaml")
	flag.Parse()

	bundle, err := configloader.Build(configloader.Params{ConfPath: *confFlag})
	if err != nil {
		panic(err)
	}
	if Name == "" {
		Name = bundle.Service.Name
	}
	if Version == "" {
		Version = bundle.Service.Version
	}

	loggr, err := loginfra.NewLogger(bundle.Service.LoggerConfig())
	if err != nil {
		panic(err)
	}

	obsShutdown, err := observability.Init(ctx, bundle.ObsConfig,
		observability.WithLogger(loggr),
		observability.WithServiceName(bundle.Service.Name),
		observability.WithServiceVersion(bundle.Service.Version),
		observability.WithEnvironment(bundle.Service.Environment),
	)
	if err != nil {
		panic(err)
	}
	defer func() {
		if obsShutdown == nil {
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obsShutdown(shutdownCtx); err != nil {
			log.NewHelper(loggr).Warnf("shutdown observability: %v", err)
		}
	}()

	app, cleanup, err := wireApp(ctx, bundle, loggr)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		panic(err)
	}
}
