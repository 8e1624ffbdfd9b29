package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

var validate = validator.New()

// Config represents the suite configuration shared by the API tests, the UI
// tests and the load test tool.
type Config struct {
	UI       UIConfig       `toml:"ui"`
	API      APIConfig      `toml:"api"`
	LoadTest LoadTestConfig `toml:"loadtest"`
	Browser  BrowserConfig  `toml:"browser"`
	Timeouts TimeoutConfig  `toml:"timeouts"`
	Logging  LoggingConfig  `toml:"logging"`
	Output   OutputConfig   `toml:"output"`
}

// UIConfig holds the URLs and domains exercised by the UI tests.
type UIConfig struct {
	HomeURL          string `toml:"home_url"`
	CareersQAURL     string `toml:"careers_qa_url"`
	OpenPositionsURL string `toml:"open_positions_url"`
	LeverDomain      string `toml:"lever_domain"` // application form host for redirect verification
}

// APIConfig holds the Petstore service settings.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout string `toml:"request_timeout"` // e.g. "30s"
}

// LoadTestConfig holds the search load test settings.
type LoadTestConfig struct {
	BaseURL     string   `toml:"base_url" validate:"required"`
	SearchPath  string   `toml:"search_path" validate:"required"`
	SearchTerms []string `toml:"search_terms" validate:"min=1"`
	Users       int      `toml:"users" validate:"min=1"`
	Duration    string   `toml:"duration"` // e.g. "30s"
	RPS         float64  `toml:"rps" validate:"gt=0"` // requests per second across all users
}

// BrowserConfig holds the chromedp session settings.
type BrowserConfig struct {
	Name         string `toml:"name"` // "chrome", "edge" or "chromium"
	ExecPath     string `toml:"exec_path"`
	Headless     bool   `toml:"headless"`
	WindowWidth  int    `toml:"window_width"`
	WindowHeight int    `toml:"window_height"`
}

// TimeoutConfig holds the explicit-wait timeout tiers.
type TimeoutConfig struct {
	Default string `toml:"default"` // standard explicit wait
	Short   string `toml:"short"`   // presence probes (is-displayed checks)
	Long    string `toml:"long"`    // slow page transitions (filter convergence)
}

// LoggingConfig controls the arbor logger.
type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// OutputConfig controls where test artifacts are written.
type OutputConfig struct {
	ResultsDir string `toml:"results_dir"` // screenshots and run logs
}

// NewDefaultConfig returns the configuration with built-in defaults applied.
func NewDefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			HomeURL:          "https://insiderone.com/",
			CareersQAURL:     "https://insiderone.com/careers/quality-assurance/",
			OpenPositionsURL: "https://insiderone.com/careers/open-positions/",
			LeverDomain:      "jobs.lever.co",
		},
		API: APIConfig{
			BaseURL:        "https://petstore.swagger.io/v2",
			RequestTimeout: "30s",
		},
		LoadTest: LoadTestConfig{
			BaseURL:     "https://www.n11.com",
			SearchPath:  "/arama",
			SearchTerms: []string{"laptop", "telefon", "kulaklık", "samsung", "ayakkabı"},
			Users:       1,
			Duration:    "30s",
			RPS:         5,
		},
		Browser: BrowserConfig{
			Name:         "chrome",
			Headless:     false,
			WindowWidth:  1920,
			WindowHeight: 1080,
		},
		Timeouts: TimeoutConfig{
			Default: "15s",
			Short:   "5s",
			Long:    "30s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Output: OutputConfig{
			ResultsDir: "results",
		},
	}
}

// LoadFromFiles loads the configuration from defaults, then merges each config
// file in order (later files override earlier ones), then applies environment
// variable overrides on top.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variables on top of file configuration.
func applyEnvOverrides(config *Config) {
	if headless := os.Getenv("HEADLESS"); headless != "" {
		config.Browser.Headless = headless == "1" || headless == "true"
	}
	if browser := os.Getenv("TEST_BROWSER"); browser != "" {
		config.Browser.Name = browser
	}
	if execPath := os.Getenv("TEST_BROWSER_PATH"); execPath != "" {
		config.Browser.ExecPath = execPath
	}
	if baseURL := os.Getenv("PETSTORE_BASE_URL"); baseURL != "" {
		config.API.BaseURL = baseURL
	}
	if baseURL := os.Getenv("LOADTEST_BASE_URL"); baseURL != "" {
		config.LoadTest.BaseURL = baseURL
	}
	if users := os.Getenv("LOADTEST_USERS"); users != "" {
		if n, err := strconv.Atoi(users); err == nil && n > 0 {
			config.LoadTest.Users = n
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if dir := os.Getenv("TEST_RESULTS_DIR"); dir != "" {
		config.Output.ResultsDir = dir
	}
}

// Validate checks the struct tags and that duration-typed fields parse.
// Durations stay strings in the TOML, so they need a parse check the tags
// cannot express.
func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"timeouts.default":    c.Timeouts.Default,
		"timeouts.short":      c.Timeouts.Short,
		"timeouts.long":       c.Timeouts.Long,
		"api.request_timeout": c.API.RequestTimeout,
		"loadtest.duration":   c.LoadTest.Duration,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s: %q: %w", name, value, err)
		}
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DefaultTimeout returns the standard explicit-wait bound.
func (c *Config) DefaultTimeout() time.Duration { return mustDuration(c.Timeouts.Default, 15*time.Second) }

// ShortTimeout returns the bound used for quick presence probes.
func (c *Config) ShortTimeout() time.Duration { return mustDuration(c.Timeouts.Short, 5*time.Second) }

// LongTimeout returns the bound used for slow page transitions.
func (c *Config) LongTimeout() time.Duration { return mustDuration(c.Timeouts.Long, 30*time.Second) }

// APIRequestTimeout returns the HTTP client timeout for Petstore calls.
func (c *Config) APIRequestTimeout() time.Duration {
	return mustDuration(c.API.RequestTimeout, 30*time.Second)
}

// LoadTestDuration returns the load test run duration.
func (c *Config) LoadTestDuration() time.Duration {
	return mustDuration(c.LoadTest.Duration, 30*time.Second)
}

func mustDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
