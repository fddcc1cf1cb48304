// Package pubsub 初始化 Google Cloud Pub/Sub 组件并暴露订阅端。
package pubsub

import (
	"context"

	"github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"

	"github.com/bionicotaku/lingo-utils/gcpubsub"
	"github.com/go-kratos/kratos/v2/log"
)

// NewCatalogSubscriber 构建 catalog 事件订阅。
// 未配置 subscription 时返回 nil，消费端按禁用处理。
func NewCatalogSubscriber(ctx context.Context, cfg gcpubsub.Config, logger log.Logger) (configloader.CatalogSubscriber, func(), error) {
	if cfg.SubscriptionID == "" {
		log.NewHelper(logger).Warn("pubsub subscription not configured, catalog sync disabled")
		return nil, func() {}, nil
	}

	component, cleanup, err := gcpubsub.NewComponent(ctx, cfg, gcpubsub.Dependencies{Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	return configloader.CatalogSubscriber(gcpubsub.ProvideSubscriber(component)), cleanup, nil
}
