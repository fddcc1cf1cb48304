package configloader

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/bionicotaku/lingo-utils/gclog"
	obswire "github.com/bionicotaku/lingo-utils/observability"
	txconfig "github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/joho/godotenv"
)

const (
	envConfPath       = "CONF_PATH"
	envServiceName    = "SERVICE_NAME"
	envServiceVersion = "SERVICE_VERSION"
	envAppEnv         = "APP_ENV"
	envDatabaseURL    = "DATABASE_URL"
	envPort           = "PORT"

	defaultConfPath    = "configs"
	defaultServiceName = "library"
	defaultVersion     = "dev"
	defaultEnvironment = "development"
)

var envFileNames = []string{".env.local", ".env"}

// Params 包含构造配置 Bundle 所需的运行时输入参数。
type Params struct {
	ConfPath string // 配置文件路径（可为空，使用默认值）
}

// ServiceMetadata 保存服务标识信息，供日志和可观测性组件使用。
type ServiceMetadata struct {
	Name        string
	Version     string
	Environment string
	InstanceID  string
}

// Bundle 聚合强类型的配置片段，供下游 Wire 注入使用。
type Bundle struct {
	Config    RuntimeConfig
	ObsConfig obswire.ObservabilityConfig
	Service   ServiceMetadata
	TxConfig  txconfig.Config
}

// BuildError 捕获配置构建过程中的上下文错误信息。
type BuildError struct {
	Stage string
	Path  string
	Err   error
}

// Error 实现 error 接口，提供包含上下文的错误信息。
func (e BuildError) Error() string {
	if e.Stage == "" {
		return e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("config %s at %q: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Stage, e.Err)
}

// Unwrap 暴露底层错误，支持 errors.Is/As 链式查询。
func (e BuildError) Unwrap() error {
	return e.Err
}

// ObservabilityInfo 将服务元信息转换为 observability.ServiceInfo。
func (m ServiceMetadata) ObservabilityInfo() obswire.ServiceInfo {
	return obswire.ServiceInfo{
		Name:        m.Name,
		Version:     m.Version,
		Environment: m.Environment,
	}
}

// LoggerConfig 将服务元信息转换为 gclog.Config。
func (m ServiceMetadata) LoggerConfig() gclog.Config {
	labels := map[string]string{}
	if m.InstanceID != "" {
		labels["service.id"] = m.InstanceID
	}
	return gclog.Config{
		Service:              m.Name,
		Version:              m.Version,
		Environment:          m.Environment,
		InstanceID:           m.InstanceID,
		StaticLabels:         labels,
		EnableSourceLocation: true,
	}
}

// Build 从 bootstrap 配置文件构建 Bundle。
//
// 流程：
// 1. 解析配置路径（显式传入 > CONF_PATH > 默认值）
// 2. best-effort 加载 .env 文件
// 3. 加载配置文件并归一化为 RuntimeConfig
// 4. 应用环境变量覆盖（DATABASE_URL、PORT）
// 5. 推导服务元信息
func Build(params Params) (*Bundle, error) {
	confPath := ResolveConfPath(params.ConfPath)
	loadEnvFiles(confPath)

	raw, err := loadFile(confPath)
	if err != nil {
		return nil, err
	}

	cfg, err := normalize(raw)
	if err != nil {
		return nil, BuildError{Stage: "normalize", Path: confPath, Err: err}
	}
	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return nil, BuildError{Stage: "validate", Path: confPath, Err: err}
	}

	obsCfg, err := toObservabilityConfig(raw.Observability)
	if err != nil {
		return nil, BuildError{Stage: "normalize", Path: confPath, Err: err}
	}

	return &Bundle{
		Config:    cfg,
		ObsConfig: obsCfg,
		Service:   buildServiceMetadata(),
		TxConfig: txconfig.Config{
			DefaultIsolation: cfg.Database.Transaction.DefaultIsolation,
			DefaultTimeout:   cfg.Database.Transaction.DefaultTimeout,
			LockTimeout:      cfg.Database.Transaction.LockTimeout,
			MaxRetries:       cfg.Database.Transaction.MaxRetries,
			MetricsEnabled:   cfg.Database.Transaction.MetricsEnabled,
		},
	}, nil
}

// ResolveConfPath 应用回退规则确定要加载的配置目录/文件路径。
func ResolveConfPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(envConfPath); env != "" {
		return env
	}
	return defaultConfPath
}

func loadFile(confPath string) (*fileBootstrap, error) {
	c := config.New(config.WithSource(file.NewSource(confPath)))
	if err := c.Load(); err != nil {
		return nil, BuildError{Stage: "load", Path: confPath, Err: err}
	}
	defer c.Close()

	var raw fileBootstrap
	if err := c.Scan(&raw); err != nil {
		return nil, BuildError{Stage: "scan", Path: confPath, Err: err}
	}
	return &raw, nil
}

// validate 检查归一化后配置的必填字段。
func validate(cfg RuntimeConfig) error {
	if cfg.Database.DSN == "" {
		return fmt.Errorf("data.postgres.dsn is required")
	}
	return nil
}

// applyEnvOverrides 应用环境变量覆盖配置文件中的特定字段。
//
// 支持的环境变量：
//   - DATABASE_URL: 覆盖 data.postgres.dsn
//   - PORT: 覆盖 server.http.addr 的端口部分（Cloud Run 动态端口）
func applyEnvOverrides(cfg *RuntimeConfig) {
	if cfg == nil {
		return
	}
	if dsn := os.Getenv(envDatabaseURL); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if port := os.Getenv(envPort); port != "" {
		cfg.Server.Address = replacePort(cfg.Server.Address, port)
	}
}

// buildServiceMetadata 从环境变量推导服务元信息，缺失时使用默认值。
func buildServiceMetadata() ServiceMetadata {
	name := os.Getenv(envServiceName)
	if name == "" {
		name = defaultServiceName
	}
	version := os.Getenv(envServiceVersion)
	if version == "" {
		version = defaultVersion
	}
	env := os.Getenv(envAppEnv)
	if env == "" {
		env = defaultEnvironment
	}
	host, _ := os.Hostname()
	if host == "" {
		host = "unknown"
	}

	return ServiceMetadata{
		Name:        name,
		Version:     version,
		Environment: env,
		InstanceID:  host,
	}
}

// loadEnvFiles best-effort 加载配置相关的 .env 文件，失败时忽略。
func loadEnvFiles(confPath string) {
	files := envFileCandidates(confPath)
	if len(files) == 0 {
		return
	}
	_ = godotenv.Load(files...)
}

// envFileCandidates 按优先级返回存在的 .env 文件：
// confPath 目录下的 .env.local / .env，其次当前工作目录。
func envFileCandidates(confPath string) []string {
	dirs := orderedDirs(confPath)
	seen := make(map[string]struct{})
	var files []string
	for _, dir := range dirs {
		for _, name := range envFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if _, ok := seen[candidate]; ok {
				continue
			}
			files = append(files, candidate)
			seen[candidate] = struct{}{}
		}
	}
	return files
}

func orderedDirs(confPath string) []string {
	var dirs []string
	appendUnique := func(path string) {
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		for _, existing := range dirs {
			if existing == clean {
				return
			}
		}
		dirs = append(dirs, clean)
	}

	if confPath != "" {
		if info, err := os.Stat(confPath); err == nil {
			if info.IsDir() {
				appendUnique(confPath)
			} else {
				appendUnique(filepath.Dir(confPath))
			}
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		appendUnique(cwd)
	}

	return dirs
}

// replacePort 替换地址中的端口部分，保留 host。
func replacePort(addr, newPort string) string {
	if addr == "" {
		return "0.0.0.0:" + newPort
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return "0.0.0.0:" + newPort
	}
	return net.JoinHostPort(host, newPort)
}
