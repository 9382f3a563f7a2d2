package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/anyproto/anytype-paste/pkg/lib/logging"
	"github.com/anyproto/anytype-paste/pkg/lib/model"
	"github.com/anyproto/anytype-paste/util/ids"
)

var log = logging.Logger("anytype-config")

const (
	EnvPrefix = "PASTE"

	IdSchemeUUID     = "uuid"
	IdSchemeObjectId = "objectid"
)

type Config struct {
	LogLevels   string `yaml:"logLevels" envconfig:"LOG_LEVEL"`
	GraylogAddr string `yaml:"graylogAddr" envconfig:"GRAYLOG_ADDR"`

	// SanitizeHTML runs the html slot through a sanitizer before conversion.
	SanitizeHTML bool `yaml:"sanitizeHtml" envconfig:"SANITIZE_HTML"`
	// DetectMarkdown enables the markdown tier for the plain text slot.
	DetectMarkdown bool `yaml:"detectMarkdown" envconfig:"DETECT_MARKDOWN"`
	// KeepBlankLines keeps empty lines of plain text as empty paragraphs.
	KeepBlankLines bool `yaml:"keepBlankLines" envconfig:"KEEP_BLANK_LINES"`
	// TextBlockSoftLimit splits long markdown paragraphs at soft line breaks.
	TextBlockSoftLimit int    `yaml:"textBlockSoftLimit" envconfig:"TEXT_BLOCK_SOFT_LIMIT"`
	IdScheme           string `yaml:"idScheme" envconfig:"ID_SCHEME"`
}

var DefaultConfig = Config{
	SanitizeHTML:       true,
	DetectMarkdown:     true,
	KeepBlankLines:     true,
	TextBlockSoftLimit: 1024,
	IdScheme:           IdSchemeUUID,
}

func WithLogLevels(levels string) func(*Config) {
	return func(c *Config) {
		c.LogLevels = levels
	}
}

func WithIdScheme(scheme string) func(*Config) {
	return func(c *Config) {
		c.IdScheme = scheme
	}
}

func WithMarkdownDetection(enabled bool) func(*Config) {
	return func(c *Config) {
		c.DetectMarkdown = enabled
	}
}

func WithSanitizer(enabled bool) func(*Config) {
	return func(c *Config) {
		c.SanitizeHTML = enabled
	}
}

func New(options ...func(*Config)) *Config {
	cfg := DefaultConfig
	for _, opt := range options {
		opt(&cfg)
	}
	return &cfg
}

// LoadFile overlays values from a yaml file on top of the current config.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return c.Validate()
}

// LoadEnv overlays PASTE_* environment variables. Unset variables keep the current values.
func (c *Config) LoadEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("process env config: %w", err)
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	switch c.IdScheme {
	case IdSchemeUUID, IdSchemeObjectId:
	default:
		return fmt.Errorf("unknown id scheme %q", c.IdScheme)
	}
	if c.TextBlockSoftLimit < 0 {
		return fmt.Errorf("textBlockSoftLimit must not be negative: %d", c.TextBlockSoftLimit)
	}
	return nil
}

func (c *Config) IdAllocator() model.IdAllocator {
	if c.IdScheme == IdSchemeObjectId {
		return ids.ObjectId{}
	}
	return ids.UUID{}
}

// ApplyLogging applies log levels and the optional graylog sink.
func (c *Config) ApplyLogging() {
	if c.LogLevels != "" {
		logging.ApplyLevels(c.LogLevels)
	}
	if c.GraylogAddr != "" {
		if err := logging.SetupGelf(c.GraylogAddr); err != nil {
			log.Errorf("failed to setup graylog sink: %v", err)
		}
	}
}
