package config

import (
	"log/slog"
	"time"
)

type Config struct {
	Server  HTTPServerConfig
	LLM     LLMConfig
	Source  SourceConfig
	Logging LoggingConfig
	Tracing TracingConfig
}

type HTTPServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// MetricsAddr starts a dedicated metrics listener when set; /metrics is always on the main router.
	MetricsAddr string
}

type LLMConfig struct {
	APIKey  Secret
	BaseURL string
	Timeout time.Duration
}

type SourceMode string

const (
	SourceModeRaw SourceMode = "raw"
	SourceModeAPI SourceMode = "api"
)

type SourceConfig struct {
	Mode        SourceMode
	GitHubToken Secret
	Timeout     time.Duration
}

type LoggingConfig struct {
	Level   string
	Service string
}

type TracingConfig struct {
	// Endpoint is an OTLP/gRPC collector address; tracing is disabled when empty.
	Endpoint string
	Insecure bool
}

// Secret holds a credential. It never renders its value through fmt or slog.
type Secret string

const redacted = "[redacted]"

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return redacted
}

func (s Secret) GoString() string {
	return s.String()
}

func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// Reveal returns the raw credential for use in outbound requests.
func (s Secret) Reveal() string {
	return string(s)
}

func Defaults() Config {
	return Config{
		Server: HTTPServerConfig{
			Host:         "0.0.0.0",
			Port:         5000,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 2 * time.Minute,
		},
		LLM: LLMConfig{
			BaseURL: "https://api.cohere.ai/v1/generate",
			Timeout: 60 * time.Second,
		},
		Source: SourceConfig{
			Mode:    SourceModeRaw,
			Timeout: 60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Service: "codedoc",
		},
	}
}
