// Package server 装配对外暴露的传输层组件。
package server

import (
	stdhttp "net/http"

	"github.com/bionicotaku/lingo-services-library/internal/controllers"
	"github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/metadata"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
)

// NewHTTPServer 构建对外 HTTP 服务器：健康检查端点与业务路由。
func NewHTTPServer(
	c configloader.ServerConfig,
	library *controllers.LibraryHandler,
	playlists *controllers.PlaylistHandler,
	videos *controllers.VideoQueryHandler,
	logger log.Logger,
) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			metadata.Server(
				metadata.WithPropagatedPrefix("x-library-"),
			),
			logging.Server(logger),
		),
	}
	if c.Network != "" {
		opts = append(opts, http.Network(c.Network))
	}
	if c.Address != "" {
		opts = append(opts, http.Address(c.Address))
	}
	if c.Timeout > 0 {
		opts = append(opts, http.Timeout(c.Timeout))
	}

	srv := http.NewServer(opts...)

	srv.Handle("/healthz", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusOK)
	}))

	srv.Handle("/readyz", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		// 预留 readiness 校验钩子：若未来需要检查数据库等依赖，可在此处扩展。
		w.WriteHeader(stdhttp.StatusOK)
	}))

	library.RegisterRoutes(srv)
	playlists.RegisterRoutes(srv)
	videos.RegisterRoutes(srv)
	return srv
}
