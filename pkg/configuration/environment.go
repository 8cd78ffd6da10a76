package configuration

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/hrms-lite/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c, err := Load([]string{".env", ".env.local"})
	if err != nil {
		panic(err)
	}
	return c
})

// LoadEnv loads the env files that exist. Files are looked up in the working
// directory first, then in the nearest parent holding a go.mod.
func LoadEnv(envFiles []string) (int, error) {
	existing := existingFiles(".", envFiles)
	if len(existing) == 0 {
		if root, ok := moduleRoot(); ok {
			existing = existingFiles(root, envFiles)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

func existingFiles(dir string, names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if fs.FileExists(path) {
			out = append(out, path)
		}
	}
	return out
}

func moduleRoot() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for dir := wd; ; {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type APIOptions struct {
	BaseURL         string        `env:"HRMS_API_BASE_URL" envDefault:"https://hms-lite.onrender.com/api"`
	Timeout         time.Duration `env:"HRMS_REQUEST_TIMEOUT" envDefault:"30s"`
	RequestIDHeader string        `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
}

type PaginationOptions struct {
	EmployeesPageSize    int `env:"EMPLOYEES_PAGE_SIZE" envDefault:"10"`
	AttendancePageSize   int `env:"ATTENDANCE_PAGE_SIZE" envDefault:"15"`
	PickerPageSize       int `env:"PICKER_PAGE_SIZE" envDefault:"10"`
	DashboardRecentLimit int `env:"DASHBOARD_RECENT_LIMIT" envDefault:"5"`
}

// Validate rejects page sizes the API would answer with 400.
func (p *PaginationOptions) Validate() error {
	sizes := map[string]int{
		"EMPLOYEES_PAGE_SIZE":    p.EmployeesPageSize,
		"ATTENDANCE_PAGE_SIZE":   p.AttendancePageSize,
		"PICKER_PAGE_SIZE":       p.PickerPageSize,
		"DASHBOARD_RECENT_LIMIT": p.DashboardRecentLimit,
	}
	for name, v := range sizes {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	return nil
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"hrms"`
}

type PrometheusOptions struct {
	Enabled  bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	PushAddr string `env:"PROMETHEUS_PUSH_ADDR"`
	Job      string `env:"PROMETHEUS_JOB" envDefault:"hrms"`
}

type Configuration struct {
	API           APIOptions
	Pagination    PaginationOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions

	AppName          string `env:"HRMS_APP_NAME" envDefault:"HRMS Lite"`
	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"error"`
	// Empty means log to stderr only.
	LogPath string `env:"LOG_PATH"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

// SetLogLevel overrides LOG_LEVEL after load (the CLI --log-level flag).
func (c *Configuration) SetLogLevel(level string) {
	c.LogLevel = level
	if c.logger != nil {
		c.logger.SetLevel(c.LogrusLogLevel())
	}
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func Use() *Configuration {
	return singleton()
}

// Load builds a fresh configuration. Prefer Use outside of tests.
func Load(envFiles []string) (*Configuration, error) {
	c := &Configuration{}
	if err := c.load(envFiles); err != nil {
		c.Unload()
		return nil, err
	}
	return c, nil
}

func (c *Configuration) load(envFiles []string) error {
	if _, err := LoadEnv(envFiles); err != nil {
		return err
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.Pagination.Validate(); err != nil {
		return fmt.Errorf("pagination configuration error: %w", err)
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger
	return nil
}

func (c *Configuration) validateAPI() error {
	raw := strings.TrimSpace(c.API.BaseURL)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid HRMS_API_BASE_URL=%q", c.API.BaseURL)
	}
	c.API.BaseURL = strings.TrimRight(raw, "/")
	if c.API.Timeout <= 0 {
		return fmt.Errorf("HRMS_REQUEST_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	return nil
}

// Unload closes the log file, if any.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
		c.logFile = nil
	}
}
