package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Fetcher FetcherConfig `yaml:"fetcher" mapstructure:"fetcher"`
	Crawl   CrawlConfig   `yaml:"crawl" mapstructure:"crawl"`
	Export  ExportConfig  `yaml:"export" mapstructure:"export"`
	Notion  NotionConfig  `yaml:"notion" mapstructure:"notion"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// FetcherConfig configures HTTP fetching and the politeness contract.
type FetcherConfig struct {
	UserAgent    string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries   int     `yaml:"max_retries" mapstructure:"max_retries"`
	DelayMinSecs float64 `yaml:"delay_min_secs" mapstructure:"delay_min_secs"`
	DelayMaxSecs float64 `yaml:"delay_max_secs" mapstructure:"delay_max_secs"`
	HostRPS      float64 `yaml:"host_rps" mapstructure:"host_rps"`
}

// CrawlConfig configures the listing walk and profile enrichment.
type CrawlConfig struct {
	SourcesFile   string `yaml:"sources_file" mapstructure:"sources_file"`
	MaxPages      int    `yaml:"max_pages" mapstructure:"max_pages"`
	MaxPubs       int    `yaml:"max_pubs" mapstructure:"max_pubs"`
	CacheTTLHours int    `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// ExportConfig configures output file paths.
type ExportConfig struct {
	CSVPath  string `yaml:"csv_path" mapstructure:"csv_path"`
	JSONPath string `yaml:"json_path" mapstructure:"json_path"`
	XLSXPath string `yaml:"xlsx_path" mapstructure:"xlsx_path"`
}

// NotionConfig holds the optional Notion outreach sink settings.
type NotionConfig struct {
	Token     string `yaml:"token" mapstructure:"token"`
	ContactDB string `yaml:"contact_db" mapstructure:"contact_db"`
}

// ServerConfig configures the records API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FACULTY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "faculty.db")
	v.SetDefault("fetcher.user_agent", "faculty-cli/1.0")
	v.SetDefault("fetcher.timeout_secs", 10)
	v.SetDefault("fetcher.max_retries", 2)
	v.SetDefault("fetcher.delay_min_secs", 1.0)
	v.SetDefault("fetcher.delay_max_secs", 3.0)
	v.SetDefault("fetcher.host_rps", 1.0)
	v.SetDefault("crawl.sources_file", "sources.yaml")
	v.SetDefault("crawl.max_pages", 50)
	v.SetDefault("crawl.max_pubs", 5)
	v.SetDefault("crawl.cache_ttl_hours", 24)
	v.SetDefault("export.csv_path", "faculty_data.csv")
	v.SetDefault("export.json_path", "faculty_data.json")
	v.SetDefault("export.xlsx_path", "faculty_data.xlsx")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
