package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type MediaConfig struct {
	Dir           string        `yaml:"dir" validate:"required|unixPath"`
	SweepInterval time.Duration `yaml:"sweepInterval"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type ServiceLockConfig struct {
	TimeSources     []string      `yaml:"timeSources"`
	SourceTimeout   time.Duration `yaml:"sourceTimeout"`
	RecheckInterval time.Duration `yaml:"recheckInterval"`
	Timezone        string        `yaml:"timezone" validate:"required"`
	GraceDays       int           `yaml:"graceDays"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server            `yaml:"webServer"`
	Persistence Persistence       `yaml:"persistence"`
	Media       MediaConfig       `yaml:"media"`
	ServiceLock ServiceLockConfig `yaml:"serviceLock"`
	Logger      LoggerConfig      `yaml:"logger"`
	Cache       CacheConfig       `yaml:"cache"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}
