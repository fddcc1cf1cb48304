package catalogsync

import (
	"github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/gcpubsub"
	outboxcfg "github.com/bionicotaku/lingo-utils/outbox/config"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
)

// ProvideRunner 装配 catalog 同步 Runner。
func ProvideRunner(
	videoRepo *repositories.VideoRepository,
	metricsRepo *repositories.VideoMetricsRepository,
	inboxRepo *repositories.InboxRepository,
	tx txmanager.Manager,
	sub configloader.CatalogSubscriber,
	outboxCfg outboxcfg.Config,
	logger log.Logger,
) *Runner {
	realSub := gcpubsub.Subscriber(sub)
	if videoRepo == nil || metricsRepo == nil || inboxRepo == nil || realSub == nil || logger == nil {
		return nil
	}

	runner, err := NewRunner(RunnerParams{
		Subscriber:  realSub,
		InboxRepo:   inboxRepo,
		VideoRepo:   videoRepo,
		MetricsRepo: metricsRepo,
		TxManager:   tx,
		Logger:      logger,
		Config:      outboxCfg.Inbox,
	})
	if err != nil {
		log.NewHelper(logger).Errorw("msg", "init catalogsync runner failed", "error", err)
		return nil
	}
	return runner
}
