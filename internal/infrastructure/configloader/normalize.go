package configloader

import (
	"fmt"
	"time"

	obswire "github.com/bionicotaku/lingo-utils/observability"
)

// normalize 将文件层结构体转换为 RuntimeConfig，并解析所有时长字段。
func normalize(raw *fileBootstrap) (RuntimeConfig, error) {
	if raw == nil {
		return RuntimeConfig{}, nil
	}

	p := &durationParser{}
	cfg := RuntimeConfig{
		Server: ServerConfig{
			Network: raw.Server.HTTP.Network,
			Address: raw.Server.HTTP.Addr,
			Timeout: p.parse("server.http.timeout", raw.Server.HTTP.Timeout),
		},
		Database: DatabaseConfig{
			DSN:               raw.Data.Postgres.DSN,
			Schema:            raw.Data.Postgres.Schema,
			MaxOpenConns:      raw.Data.Postgres.MaxOpenConns,
			MinOpenConns:      raw.Data.Postgres.MinOpenConns,
			MaxConnLifetime:   p.parse("data.postgres.max_conn_lifetime", raw.Data.Postgres.MaxConnLifetime),
			MaxConnIdleTime:   p.parse("data.postgres.max_conn_idle_time", raw.Data.Postgres.MaxConnIdleTime),
			HealthCheckPeriod: p.parse("data.postgres.health_check_period", raw.Data.Postgres.HealthCheckPeriod),
			Transaction: TransactionConfig{
				DefaultIsolation: raw.Data.Postgres.Transaction.DefaultIsolation,
				DefaultTimeout:   p.parse("data.postgres.transaction.default_timeout", raw.Data.Postgres.Transaction.DefaultTimeout),
				LockTimeout:      p.parse("data.postgres.transaction.lock_timeout", raw.Data.Postgres.Transaction.LockTimeout),
				MaxRetries:       raw.Data.Postgres.Transaction.MaxRetries,
				MetricsEnabled:   raw.Data.Postgres.Transaction.MetricsEnabled,
			},
		},
		Messaging: MessagingConfig{
			PubSub: PubSubConfig{
				ProjectID:           raw.Messaging.PubSub.ProjectID,
				TopicID:             raw.Messaging.PubSub.TopicID,
				SubscriptionID:      raw.Messaging.PubSub.SubscriptionID,
				OrderingKeyEnabled:  raw.Messaging.PubSub.OrderingKeyEnabled,
				LoggingEnabled:      raw.Messaging.PubSub.LoggingEnabled,
				MetricsEnabled:      raw.Messaging.PubSub.MetricsEnabled,
				EmulatorEndpoint:    raw.Messaging.PubSub.EmulatorEndpoint,
				ExactlyOnceDelivery: raw.Messaging.PubSub.ExactlyOnceDelivery,
				Receive: PubSubReceiveConfig{
					NumGoroutines:          raw.Messaging.PubSub.Receive.NumGoroutines,
					MaxOutstandingMessages: raw.Messaging.PubSub.Receive.MaxOutstandingMessages,
					MaxOutstandingBytes:    raw.Messaging.PubSub.Receive.MaxOutstandingBytes,
					MaxExtension:           p.parse("messaging.pubsub.receive.max_extension", raw.Messaging.PubSub.Receive.MaxExtension),
					MaxExtensionPeriod:     p.parse("messaging.pubsub.receive.max_extension_period", raw.Messaging.PubSub.Receive.MaxExtensionPeriod),
				},
			},
			Inbox: InboxConfig{
				SourceService:  raw.Messaging.Inbox.SourceService,
				MaxConcurrency: raw.Messaging.Inbox.MaxConcurrency,
			},
		},
	}
	if p.err != nil {
		return RuntimeConfig{}, p.err
	}
	fillDefaults(&cfg)
	return cfg, nil
}

// toObservabilityConfig 将文件层可观测性配置转换为 observability 包的规范化结构。
func toObservabilityConfig(src fileObservability) (obswire.ObservabilityConfig, error) {
	p := &durationParser{}
	cfg := obswire.ObservabilityConfig{
		GlobalAttributes: cloneStringMap(src.GlobalAttributes),
	}
	if tr := src.Tracing; tr != nil {
		cfg.Tracing = &obswire.TracingConfig{
			Enabled:            tr.Enabled,
			Exporter:           tr.Exporter,
			Endpoint:           tr.Endpoint,
			Headers:            cloneStringMap(tr.Headers),
			Insecure:           tr.Insecure,
			SamplingRatio:      tr.SamplingRatio,
			BatchTimeout:       p.parse("observability.tracing.batch_timeout", tr.BatchTimeout),
			ExportTimeout:      p.parse("observability.tracing.export_timeout", tr.ExportTimeout),
			MaxQueueSize:       tr.MaxQueueSize,
			MaxExportBatchSize: tr.MaxExportBatchSize,
			Required:           tr.Required,
			Attributes:         cloneStringMap(tr.Attributes),
		}
	}
	if mt := src.Metrics; mt != nil {
		cfg.Metrics = &obswire.MetricsConfig{
			Enabled:             mt.Enabled,
			Exporter:            mt.Exporter,
			Endpoint:            mt.Endpoint,
			Headers:             cloneStringMap(mt.Headers),
			Insecure:            mt.Insecure,
			Interval:            p.parse("observability.metrics.interval", mt.Interval),
			DisableRuntimeStats: mt.DisableRuntimeStats,
			Required:            mt.Required,
			ResourceAttributes:  cloneStringMap(mt.ResourceAttributes),
		}
	}
	if p.err != nil {
		return obswire.ObservabilityConfig{}, p.err
	}
	return cfg, nil
}

// durationParser 逐字段解析时长字符串，保留第一个解析错误。
type durationParser struct {
	err error
}

func (p *durationParser) parse(field, raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("parse %s %q: %w", field, raw, err)
		}
		return 0
	}
	return d
}

func fillDefaults(cfg *RuntimeConfig) {
	if cfg.Server.Network == "" {
		cfg.Server.Network = "tcp"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = "0.0.0.0:8000"
	}
	if cfg.Database.Schema == "" {
		cfg.Database.Schema = "library"
	}
	if cfg.Messaging.Inbox.MaxConcurrency <= 0 {
		cfg.Messaging.Inbox.MaxConcurrency = 4
	}
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
