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

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type FeedConfig struct {
	// URLTemplate is expanded with the course and stream identifiers,
	// e.g. "https://feeds.example.org/schedule_%s_%s.ics".
	URLTemplate string        `yaml:"urlTemplate" validate:"required"`
	Timeout     time.Duration `yaml:"timeout"`
}

type RecurringConfig struct {
	Subject        string `yaml:"subject"`
	MorningStart   string `yaml:"morningStart"`
	MorningEnd     string `yaml:"morningEnd"`
	AfternoonStart string `yaml:"afternoonStart"`
	AfternoonEnd   string `yaml:"afternoonEnd"`
}

type ScheduleConfig struct {
	Timezone      string          `yaml:"timezone" validate:"required"`
	BreakSubjects []string        `yaml:"breakSubjects"`
	Recurring     RecurringConfig `yaml:"recurring"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Feed        FeedConfig     `yaml:"feed"`
	Schedule    ScheduleConfig `yaml:"schedule"`
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}
