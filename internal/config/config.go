package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath   = "./config.yaml"
	defaultPollInterval = 50 * time.Millisecond
	defaultListenAddr   = ":8081"
	defaultDataDir      = "./parts"
	defaultOutput       = "./index.wasm"
	defaultLogLevel     = "info"
)

// DefaultParts — имена частей, которые ожидает загрузчик по умолчанию.
var DefaultParts = []string{
	"index.wasm.part1",
	"index.wasm.part2",
	"index.wasm.part3",
}

type Config struct {
	// BaseURL — адрес, относительно которого запрашиваются части.
	BaseURL string   `yaml:"base_url" json:"base_url"`
	Parts   []string `yaml:"parts" json:"parts"`
	// PollInterval — пауза между проверками наличия точки входа.
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval"`
	// PollTimeout ограничивает ожидание точки входа; 0 — ждать бесконечно.
	PollTimeout  time.Duration `yaml:"poll_timeout" json:"poll_timeout"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" json:"fetch_timeout"`
	Progress     bool          `yaml:"progress" json:"progress"`
	Output       string        `yaml:"output" json:"output"`
	ListenAddr   string        `yaml:"listen_addr" json:"listen_addr"`
	DataDir      string        `yaml:"data_dir" json:"data_dir"`
	LogLevel     string        `yaml:"log_level" json:"log_level"`
	LogFormat    string        `yaml:"log_format" json:"log_format"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		Parts:        append([]string{}, DefaultParts...),
		PollInterval: defaultPollInterval,
		Output:       defaultOutput,
		ListenAddr:   defaultListenAddr,
		DataDir:      defaultDataDir,
		LogLevel:     defaultLogLevel,
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Отсутствие файла по пути по умолчанию не считается ошибкой.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || path == "" {
		path = defaultConfigPath
		explicit = false
	}

	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	// ENV override
	if v := os.Getenv("BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("PARTS"); v != "" {
		c.Parts = splitComma(v)
	}
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		if c.PollInterval, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("POLL_INTERVAL: %w", err)
		}
	}
	if v := os.Getenv("POLL_TIMEOUT"); v != "" {
		if c.PollTimeout, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("POLL_TIMEOUT: %w", err)
		}
	}
	if v := os.Getenv("OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.PollTimeout < 0 {
		return nil, fmt.Errorf("poll_timeout must be >= 0")
	}
	if len(c.Parts) == 0 {
		return nil, fmt.Errorf("parts list is empty")
	}

	return c, nil
}

func splitComma(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
