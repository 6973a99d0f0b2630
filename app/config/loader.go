package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// DefaultConfigFile is read when no path is given. A missing file is not an error.
const DefaultConfigFile = "codedoc.hcl"

var ErrMissingAPIKey = errors.New("COHERE_API_KEY env variable is required")

type fileConfig struct {
	Server  *fileServer  `hcl:"server,block"`
	LLM     *fileLLM     `hcl:"llm,block"`
	Source  *fileSource  `hcl:"source,block"`
	Logging *fileLogging `hcl:"logging,block"`
	Tracing *fileTracing `hcl:"tracing,block"`
}

type fileServer struct {
	Host         string `hcl:"host,optional"`
	Port         int    `hcl:"port,optional"`
	ReadTimeout  string `hcl:"read_timeout,optional"`
	WriteTimeout string `hcl:"write_timeout,optional"`
	MetricsAddr  string `hcl:"metrics_addr,optional"`
}

type fileLLM struct {
	APIKey  string `hcl:"api_key,optional"`
	BaseURL string `hcl:"base_url,optional"`
	Timeout string `hcl:"timeout,optional"`
}

type fileSource struct {
	Mode        string `hcl:"mode,optional"`
	GitHubToken string `hcl:"github_token,optional"`
	Timeout     string `hcl:"timeout,optional"`
}

type fileLogging struct {
	Level   string `hcl:"level,optional"`
	Service string `hcl:"service,optional"`
}

type fileTracing struct {
	Endpoint string `hcl:"endpoint,optional"`
	Insecure bool   `hcl:"insecure,optional"`
}

// Load builds a Config from defaults, then the HCL file at path, then the environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := loadFile(&cfg, path, explicit); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	if err := loadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}
	return &cfg, nil
}

// RequireAPIKey reports whether the generation credential is configured.
func (c *Config) RequireAPIKey() error {
	if c.LLM.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func loadFile(cfg *Config, path string, required bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	var fc fileConfig
	if err := hclsimple.Decode(path, src, nil, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return fc.apply(cfg)
}

func (fc *fileConfig) apply(cfg *Config) error {
	if s := fc.Server; s != nil {
		setString(&cfg.Server.Host, s.Host)
		if s.Port != 0 {
			cfg.Server.Port = s.Port
		}
		if err := setDuration(&cfg.Server.ReadTimeout, s.ReadTimeout, "server.read_timeout"); err != nil {
			return err
		}
		if err := setDuration(&cfg.Server.WriteTimeout, s.WriteTimeout, "server.write_timeout"); err != nil {
			return err
		}
		setString(&cfg.Server.MetricsAddr, s.MetricsAddr)
	}
	if l := fc.LLM; l != nil {
		if l.APIKey != "" {
			cfg.LLM.APIKey = Secret(l.APIKey)
		}
		setString(&cfg.LLM.BaseURL, l.BaseURL)
		if err := setDuration(&cfg.LLM.Timeout, l.Timeout, "llm.timeout"); err != nil {
			return err
		}
	}
	if s := fc.Source; s != nil {
		if s.Mode != "" {
			cfg.Source.Mode = SourceMode(s.Mode)
		}
		if s.GitHubToken != "" {
			cfg.Source.GitHubToken = Secret(s.GitHubToken)
		}
		if err := setDuration(&cfg.Source.Timeout, s.Timeout, "source.timeout"); err != nil {
			return err
		}
	}
	if l := fc.Logging; l != nil {
		setString(&cfg.Logging.Level, l.Level)
		setString(&cfg.Logging.Service, l.Service)
	}
	if t := fc.Tracing; t != nil {
		setString(&cfg.Tracing.Endpoint, t.Endpoint)
		cfg.Tracing.Insecure = cfg.Tracing.Insecure || t.Insecure
	}
	return nil
}

// loadEnv overlays non-empty environment variables onto cfg.
func loadEnv(cfg *Config) error {
	setString(&cfg.Server.Host, os.Getenv("SERVER_HOST"))
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	setString(&cfg.Server.MetricsAddr, os.Getenv("METRICS_ADDR"))

	if v := os.Getenv("COHERE_API_KEY"); v != "" {
		cfg.LLM.APIKey = Secret(v)
	}
	setString(&cfg.LLM.BaseURL, os.Getenv("COHERE_BASE_URL"))

	if v := os.Getenv("SOURCE_MODE"); v != "" {
		cfg.Source.Mode = SourceMode(strings.ToLower(v))
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.Source.GitHubToken = Secret(v)
	}
	if v := os.Getenv("HTTP_CLIENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HTTP_CLIENT_TIMEOUT: %w", err)
		}
		cfg.LLM.Timeout = d
		cfg.Source.Timeout = d
	}

	setString(&cfg.Logging.Level, os.Getenv("LOG_LEVEL"))
	setString(&cfg.Tracing.Endpoint, os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		insecure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("OTEL_EXPORTER_OTLP_INSECURE: %w", err)
		}
		cfg.Tracing.Insecure = insecure
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", cfg.Server.Port)
	}
	switch cfg.Source.Mode {
	case SourceModeRaw, SourceModeAPI:
	default:
		return fmt.Errorf("unknown source mode %q", cfg.Source.Mode)
	}
	if cfg.LLM.BaseURL == "" {
		return errors.New("llm base url is empty")
	}
	if cfg.LLM.Timeout <= 0 || cfg.Source.Timeout <= 0 {
		return errors.New("client timeouts must be positive")
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v, name string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}
