package catalogsync

import (
	"context"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/gcpubsub"
	outboxcfg "github.com/bionicotaku/lingo-utils/outbox/config"
	"github.com/bionicotaku/lingo-utils/outbox/inbox"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"go.opentelemetry.io/otel"
)

// Runner 负责消费 catalog 事件流并维护本地投影。
type Runner struct {
	delegate *inbox.Runner[Event]
	handler  *EventHandler
}

// RunnerParams 注入构建 Runner 所需的依赖。
type RunnerParams struct {
	Subscriber  gcpubsub.Subscriber
	InboxRepo   *repositories.InboxRepository
	VideoRepo   *repositories.VideoRepository
	MetricsRepo *repositories.VideoMetricsRepository
	TxManager   txmanager.Manager
	Logger      log.Logger
	Config      outboxcfg.InboxConfig
}

// NewRunner 构造 catalog 同步 Runner。
func NewRunner(params RunnerParams) (*Runner, error) {
	if params.Subscriber == nil {
		return nil, fmt.Errorf("catalogsync: subscriber is required")
	}
	if params.InboxRepo == nil {
		return nil, fmt.Errorf("catalogsync: inbox repository is required")
	}
	if params.VideoRepo == nil {
		return nil, fmt.Errorf("catalogsync: video repository is required")
	}
	if params.MetricsRepo == nil {
		return nil, fmt.Errorf("catalogsync: metrics repository is required")
	}
	if params.TxManager == nil {
		return nil, fmt.Errorf("catalogsync: transaction manager is required")
	}

	helper := log.NewHelper(params.Logger)
	meter := otel.GetMeterProvider().Meter("lingo-services-library.catalogsync")
	stats := newSyncMetrics(meter, helper)

	handler := NewEventHandler(params.VideoRepo, params.MetricsRepo, params.Logger, stats)
	decoder := newEventDecoder()

	delegate, err := inbox.NewRunner[Event](inbox.RunnerParams[Event]{
		Store:      params.InboxRepo.Shared(),
		Subscriber: params.Subscriber,
		TxManager:  params.TxManager,
		Decoder:    decoder,
		Handler:    handler,
		Config:     params.Config,
		Logger:     params.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Runner{delegate: delegate, handler: handler}, nil
}

// WithClock 提供测试替换时钟的能力。
func (r *Runner) WithClock(fn func() time.Time) {
	if fn == nil {
		return
	}
	if r.delegate != nil {
		r.delegate.WithClock(fn)
	}
	if r.handler != nil {
		r.handler.clock = fn
	}
}

// Run 启动 StreamingPull 消费循环，直到 context 取消。
func (r *Runner) Run(ctx context.Context) error {
	if r == nil || r.delegate == nil {
		return nil
	}
	return r.delegate.Run(ctx)
}
