package configloader

// 文件层结构体：与 config.yaml 一一对应，时间字段使用字符串形式
// （如 "5s"、"30m"），在 normalize 阶段解析为 time.Duration。

type fileBootstrap struct {
	Server        fileServer        `json:"server"`
	Data          fileData          `json:"data"`
	Messaging     fileMessaging     `json:"messaging"`
	Observability fileObservability `json:"observability"`
}

type fileServer struct {
	HTTP fileHTTPServer `json:"http"`
}

type fileHTTPServer struct {
	Network string `json:"network"`
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type fileData struct {
	Postgres filePostgres `json:"postgres"`
}

type filePostgres struct {
	DSN               string          `json:"dsn"`
	Schema            string          `json:"schema"`
	MaxOpenConns      int32           `json:"max_open_conns"`
	MinOpenConns      int32           `json:"min_open_conns"`
	MaxConnLifetime   string          `json:"max_conn_lifetime"`
	MaxConnIdleTime   string          `json:"max_conn_idle_time"`
	HealthCheckPeriod string          `json:"health_check_period"`
	Transaction       fileTransaction `json:"transaction"`
}

type fileTransaction struct {
	DefaultIsolation string `json:"default_isolation"`
	DefaultTimeout   string `json:"default_timeout"`
	LockTimeout      string `json:"lock_timeout"`
	MaxRetries       int    `json:"max_retries"`
	MetricsEnabled   *bool  `json:"metrics_enabled"`
}

type fileMessaging struct {
	PubSub filePubSub `json:"pubsub"`
	Inbox  fileInbox  `json:"inbox"`
}

type filePubSub struct {
	ProjectID           string            `json:"project_id"`
	TopicID             string            `json:"topic_id"`
	SubscriptionID      string            `json:"subscription_id"`
	OrderingKeyEnabled  *bool             `json:"ordering_key_enabled"`
	LoggingEnabled      *bool             `json:"logging_enabled"`
	MetricsEnabled      *bool             `json:"metrics_enabled"`
	EmulatorEndpoint    string            `json:"emulator_endpoint"`
	ExactlyOnceDelivery bool              `json:"exactly_once_delivery"`
	Receive             filePubSubReceive `json:"receive"`
}

type filePubSubReceive struct {
	NumGoroutines          int    `json:"num_goroutines"`
	MaxOutstandingMessages int    `json:"max_outstanding_messages"`
	MaxOutstandingBytes    int    `json:"max_outstanding_bytes"`
	MaxExtension           string `json:"max_extension"`
	MaxExtensionPeriod     string `json:"max_extension_period"`
}

type fileInbox struct {
	SourceService  string `json:"source_service"`
	MaxConcurrency int    `json:"max_concurrency"`
}

type fileObservability struct {
	GlobalAttributes map[string]string `json:"global_attributes"`
	Tracing          *fileTracing      `json:"tracing"`
	Metrics          *fileMetrics      `json:"metrics"`
}

type fileTracing struct {
	Enabled            bool              `json:"enabled"`
	Exporter           string            `json:"exporter"`
	Endpoint           string            `json:"endpoint"`
	Headers            map[string]string `json:"headers"`
	Insecure           bool              `json:"insecure"`
	SamplingRatio      float64           `json:"sampling_ratio"`
	BatchTimeout       string            `json:"batch_timeout"`
	ExportTimeout      string            `json:"export_timeout"`
	MaxQueueSize       int               `json:"max_queue_size"`
	MaxExportBatchSize int               `json:"max_export_batch_size"`
	Required           bool              `json:"required"`
	Attributes         map[string]string `json:"attributes"`
}

type fileMetrics struct {
	Enabled             bool              `json:"enabled"`
	Exporter            string            `json:"exporter"`
	Endpoint            string            `json:"endpoint"`
	Headers             map[string]string `json:"headers"`
	Insecure            bool              `json:"insecure"`
	Interval            string            `json:"interval"`
	DisableRuntimeStats bool              `json:"disable_runtime_stats"`
	Required            bool              `json:"required"`
	ResourceAttributes  map[string]string `json:"resource_attributes"`
}
