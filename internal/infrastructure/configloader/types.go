// Package configloader 负责加载 bootstrap 配置文件，归一化为强类型的
// RuntimeConfig，并向 Wire 图暴露各基础设施组件所需的配置片段。
package configloader

import (
	"time"

	"github.com/bionicotaku/lingo-utils/gcpubsub"
)

// CatalogSubscriber 标记订阅 catalog 事件流的 Pub/Sub Subscriber，
// 便于 Wire 在多订阅场景下区分注入目标。
type CatalogSubscriber gcpubsub.Subscriber

// RuntimeConfig 是配置文件归一化后的运行时视图。
type RuntimeConfig struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Messaging MessagingConfig
}

// ServerConfig 描述 HTTP 服务器监听参数。
type ServerConfig struct {
	Network string
	Address string
	Timeout time.Duration
}

// DatabaseConfig 描述 PostgreSQL 连接池与事务参数。
type DatabaseConfig struct {
	DSN               string
	Schema            string
	MaxOpenConns      int32
	MinOpenConns      int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	Transaction       TransactionConfig
}

// TransactionConfig 描述 txmanager 的默认事务行为。
type TransactionConfig struct {
	DefaultIsolation string
	DefaultTimeout   time.Duration
	LockTimeout      time.Duration
	MaxRetries       int
	MetricsEnabled   *bool
}

// MessagingConfig 描述 Pub/Sub 订阅与 inbox 消费参数。
type MessagingConfig struct {
	PubSub PubSubConfig
	Inbox  InboxConfig
}

// PubSubConfig 描述 catalog 事件订阅所在的 Pub/Sub 资源。
type PubSubConfig struct {
	ProjectID           string
	TopicID             string
	SubscriptionID      string
	OrderingKeyEnabled  *bool
	LoggingEnabled      *bool
	MetricsEnabled      *bool
	EmulatorEndpoint    string
	ExactlyOnceDelivery bool
	Receive             PubSubReceiveConfig
}

// PubSubReceiveConfig 描述 StreamingPull 的流控参数。
type PubSubReceiveConfig struct {
	NumGoroutines          int
	MaxOutstandingMessages int
	MaxOutstandingBytes    int
	MaxExtension           time.Duration
	MaxExtensionPeriod     time.Duration
}

// InboxConfig 描述 inbox 消费端参数。
type InboxConfig struct {
	SourceService  string
	MaxConcurrency int
}
