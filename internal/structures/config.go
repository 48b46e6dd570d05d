package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath string `yaml:"filePath" validate:"required"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type DiscordConfig struct {
	Token              string   `yaml:"token" validate:"required"`
	BroadcastChannelID string   `yaml:"broadcastChannelId" validate:"required"`
	CommandPrefix      string   `yaml:"commandPrefix"`
	WelcomeMessage     string   `yaml:"welcomeMessage"`
	ForbiddenWords     []string `yaml:"forbiddenWords"`
}

type CatalogConfig struct {
	BaseURL   string        `yaml:"baseUrl" validate:"required|fullUrl"`
	APIKey    string        `yaml:"apiKey" validate:"required"`
	UserAgent string        `yaml:"userAgent" validate:"required"`
	Timeout   time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type SelectorConfig struct {
	PageSize int           `yaml:"pageSize" validate:"required|int|min:1"`
	Timeout  time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
	NotifyAt string        `yaml:"notifyAt" validate:"required"`
	Timezone string        `yaml:"timezone"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Discord     DiscordConfig   `yaml:"discord"`
	Catalog     CatalogConfig   `yaml:"catalog"`
	Selector    SelectorConfig  `yaml:"selector"`
	Scheduler   SchedulerConfig `yaml:"scheduler"`
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Logger      LoggerConfig    `yaml:"logger"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}
