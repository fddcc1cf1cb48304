package configloader

import (
	"github.com/bionicotaku/lingo-utils/gclog"
	"github.com/bionicotaku/lingo-utils/gcpubsub"
	obswire "github.com/bionicotaku/lingo-utils/observability"
	outboxcfg "github.com/bionicotaku/lingo-utils/outbox/config"
	txconfig "github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/wire"
)

// ProviderSet 向 Wire 图暴露配置派生的依赖。
var ProviderSet = wire.NewSet(
	ProvideRuntimeConfig,
	ProvideServiceMetadata,
	ProvideServerConfig,
	ProvideDatabaseConfig,
	ProvideTxConfig,
	ProvideObservabilityConfig,
	ProvideLoggerConfig,
	ProvidePubSubConfig,
	ProvideOutboxConfig,
)

// ProvideRuntimeConfig 暴露归一化后的运行时配置。
func ProvideRuntimeConfig(b *Bundle) RuntimeConfig {
	if b == nil {
		return RuntimeConfig{}
	}
	return b.Config
}

// ProvideServiceMetadata 暴露服务元信息。
func ProvideServiceMetadata(b *Bundle) ServiceMetadata {
	if b == nil {
		return ServiceMetadata{}
	}
	return b.Service
}

// ProvideServerConfig 暴露 HTTP 服务器配置片段。
func ProvideServerConfig(cfg RuntimeConfig) ServerConfig {
	return cfg.Server
}

// ProvideDatabaseConfig 暴露数据库配置片段。
func ProvideDatabaseConfig(cfg RuntimeConfig) DatabaseConfig {
	return cfg.Database
}

// ProvideTxConfig 暴露 txmanager 配置。
func ProvideTxConfig(b *Bundle) txconfig.Config {
	if b == nil {
		return txconfig.Config{}
	}
	return b.TxConfig
}

// ProvideObservabilityConfig 暴露规范化后的可观测性配置。
func ProvideObservabilityConfig(b *Bundle) obswire.ObservabilityConfig {
	if b == nil {
		return obswire.ObservabilityConfig{}
	}
	return b.ObsConfig
}

// ProvideLoggerConfig 暴露结构化日志配置。
func ProvideLoggerConfig(b *Bundle) gclog.Config {
	if b == nil {
		return gclog.Config{}
	}
	return b.Service.LoggerConfig()
}

// ProvidePubSubConfig 将 Messaging 配置映射为 gcpubsub 组件配置。
func ProvidePubSubConfig(cfg RuntimeConfig) gcpubsub.Config {
	ps := cfg.Messaging.PubSub
	return gcpubsub.Config{
		ProjectID:           ps.ProjectID,
		TopicID:             ps.TopicID,
		SubscriptionID:      ps.SubscriptionID,
		OrderingKeyEnabled:  ps.OrderingKeyEnabled,
		EnableLogging:       ps.LoggingEnabled,
		EnableMetrics:       ps.MetricsEnabled,
		EmulatorEndpoint:    ps.EmulatorEndpoint,
		ExactlyOnceDelivery: ps.ExactlyOnceDelivery,
		Receive: gcpubsub.ReceiveConfig{
			NumGoroutines:          ps.Receive.NumGoroutines,
			MaxOutstandingMessages: ps.Receive.MaxOutstandingMessages,
			MaxOutstandingBytes:    ps.Receive.MaxOutstandingBytes,
			MaxExtension:           ps.Receive.MaxExtension,
			MaxExtensionPeriod:     ps.Receive.MaxExtensionPeriod,
		},
	}
}

// ProvideOutboxConfig 将 schema 与 inbox 消费参数映射为 outbox 组件配置。
func ProvideOutboxConfig(cfg RuntimeConfig) outboxcfg.Config {
	return outboxcfg.Config{
		Schema: cfg.Database.Schema,
		Inbox: outboxcfg.InboxConfig{
			SourceService:  cfg.Messaging.Inbox.SourceService,
			MaxConcurrency: cfg.Messaging.Inbox.MaxConcurrency,
		},
	}
}
