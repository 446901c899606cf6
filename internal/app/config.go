package app

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"

	"scroll-scene/internal/particles"
)

// EnvPrefix prefixes every environment variable the scene reads.
const EnvPrefix = "SCENE_"

// Config holds the runtime settings. Precedence: defaults, then environment,
// then flags.
type Config struct {
	Count   int    `env:"COUNT"`
	Seed    int64  `env:"SEED"`
	TPS     int    `env:"TPS"`
	Width   int    `env:"WIDTH"`
	Height  int    `env:"HEIGHT"`
	Locale  string `env:"LOCALE"`
	Content string `env:"CONTENT"`
}

// NewConfig returns the defaults.
func NewConfig() *Config {
	return &Config{
		Count:  particles.DefaultCount,
		Seed:   1,
		TPS:    60,
		Width:  1280,
		Height: 800,
		Locale: "en",
	}
}

// ParseEnv overlays SCENE_* environment variables. Unset variables keep the
// current value.
func (c *Config) ParseEnv() error {
	return c.parseEnv(nil)
}

func (c *Config) parseEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Bind registers the command-line flags, defaulting to the current values.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Count, "count", c.Count, "number of background particles")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "particle placement seed")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Width, "width", c.Width, "initial window width")
	fs.IntVar(&c.Height, "height", c.Height, "initial window height")
	fs.StringVar(&c.Locale, "locale", c.Locale, "display locale (BCP 47)")
	fs.StringVar(&c.Content, "content", c.Content, "optional YAML file layered over the built-in content")
}

// Validate rejects settings the scene cannot run with.
func (c *Config) Validate() error {
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}
