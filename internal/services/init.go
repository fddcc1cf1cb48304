// Package services contains application use case orchestration.
package services

import "github.com/google/wire"

// ProviderSet 暴露 Service 层的构造函数供 Wire 依赖注入使用。
// 接口与具体仓储的绑定在各 cmd 的 wire.go 中声明。
var ProviderSet = wire.NewSet(
	NewLibraryUsecase,
	NewVoteUsecase,
	NewPlaylistUsecase,
	NewLibraryQueryService,
	NewVideoQueryService,
)
