package controllers

import (
	"github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"

	"github.com/google/wire"
)

// ProviderSet 暴露入口层构造器供 Wire 依赖注入使用。
var ProviderSet = wire.NewSet(
	ProvideHandlerTimeouts,
	NewBaseHandler,
	NewLibraryHandler,
	NewPlaylistHandler,
	NewVideoQueryHandler,
)

// ProvideHandlerTimeouts 从服务器配置推导各类 Handler 的超时策略。
func ProvideHandlerTimeouts(c configloader.ServerConfig) HandlerTimeouts {
	return HandlerTimeouts{Default: c.Timeout}
}
