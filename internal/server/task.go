package server

import (
	"context"
	"errors"

	"github.com/bionicotaku/lingo-services-library/internal/tasks/catalogsync"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"
)

// CatalogSyncServer 将 catalogsync Runner 适配为 kratos transport.Server，
// 使消费循环与 HTTP 服务器共享同一应用生命周期。
type CatalogSyncServer struct {
	runner *catalogsync.Runner
	log    *log.Helper

	cancel context.CancelFunc
}

var _ transport.Server = (*CatalogSyncServer)(nil)

// NewCatalogSyncServer 包装 Runner；Runner 为 nil 时消费被禁用。
func NewCatalogSyncServer(runner *catalogsync.Runner, logger log.Logger) *CatalogSyncServer {
	return &CatalogSyncServer{
		runner: runner,
		log:    log.NewHelper(logger),
	}
}

// Start 阻塞运行消费循环，直到 Stop 或进程退出。
func (s *CatalogSyncServer) Start(ctx context.Context) error {
	if s.runner == nil {
		s.log.Warn("catalog sync disabled (missing messaging configuration)")
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.log.Info("starting catalog sync consumer")
	if err := s.runner.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Stop 取消消费循环。
func (s *CatalogSyncServer) Stop(_ context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	s.log.Info("catalog sync consumer stopped")
	return nil
}
