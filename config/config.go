package config

import (
	"fmt"
	"net"
	"time"

	"github.com/jessevdk/go-flags"
)

// Config is the server configuration. Every option can come from a flag or
// from its environment variable; flags win.
type Config struct {
	Host          string        `long:"host" env:"LISTEN_HOST" description:"address to listen on"`
	Port          string        `long:"port" env:"PORT" default:"8081" description:"port to listen on"`
	FetchTimeout  time.Duration `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"15s" description:"timeout for downloading a source image"`
	MaxImageBytes int64         `long:"max-image-bytes" env:"MAX_IMAGE_BYTES" default:"20971520" description:"largest source image accepted"`
	LogLevel      string        `long:"log-level" env:"LOG_LEVEL" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"minimum log level"`
	LogFormat     string        `long:"log-format" env:"LOG_FORMAT" default:"text" choice:"text" choice:"json" description:"log output format"`
	LogFile       string        `long:"log-file" env:"LOG_FILE" description:"also append json logs to this file"`
}

// Load parses args (without the program name) on top of the environment.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	if cfg.MaxImageBytes <= 0 {
		return nil, fmt.Errorf("max-image-bytes must be positive, got %d", cfg.MaxImageBytes)
	}
	if cfg.FetchTimeout <= 0 {
		return nil, fmt.Errorf("fetch-timeout must be positive, got %s", cfg.FetchTimeout)
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
