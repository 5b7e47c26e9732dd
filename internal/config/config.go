package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decision-labs/contour/internal/noise"
	"github.com/decision-labs/contour/internal/render"
)

const (
	DefaultTitle       = "Decision Labs Blog"
	DefaultSiteURL     = "https://decision-labs.com"
	DefaultDescription = "Insights on AI, machine learning, decision science, and the future of intelligent systems."
	DefaultFeedPath    = "public/rss.xml"
	DefaultPostsPath   = "src/data/posts.json"
	DefaultUsername    = "geobaseapp"
	DefaultAuthor      = "GeoBase"
	DefaultAPIBase     = "https://api.twitter.com"
	DefaultMaxResults  = 10
	DefaultTokenEnv    = "TWITTER_BEARER_TOKEN"
	UsernameEnv        = "TWITTER_USERNAME"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Renderer RendererConfig `yaml:"renderer"`
	Site     SiteConfig     `yaml:"site"`
	Posts    PostsConfig    `yaml:"posts"`
	Social   SocialConfig   `yaml:"social"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type RendererConfig struct {
	Seed         int64   `yaml:"seed"`
	Field        string  `yaml:"field"`
	TargetFPS    int     `yaml:"target_fps"`
	CellSize     float64 `yaml:"cell_size"`
	Levels       int     `yaml:"levels"`
	Scale        float64 `yaml:"scale"`
	Octaves      int     `yaml:"octaves"`
	TimeStep     float64 `yaml:"time_step"`
	TimeScale    float64 `yaml:"time_scale"`
	LinearInterp bool    `yaml:"linear_interp"`
}

type SiteConfig struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	FeedPath    string `yaml:"feed_path"`
}

type PostsConfig struct {
	Path string `yaml:"path"`
}

type SocialConfig struct {
	Username   string `yaml:"username"`
	Author     string `yaml:"author"`
	APIBase    string `yaml:"api_base"`
	MaxResults int    `yaml:"max_results"`
	TokenEnv   string `yaml:"token_env"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultRenderer() RendererConfig {
	return RendererConfig{
		Seed:      noise.DefaultSeed,
		Field:     noise.KindPerlin,
		TargetFPS: render.DefaultTargetFPS,
		CellSize:  render.DefaultCellSize,
		Levels:    render.DefaultLevels,
		Scale:     render.DefaultScale,
		Octaves:   render.DefaultOctaves,
		TimeStep:  render.DefaultTimeStep,
		TimeScale: render.DefaultTimeScale,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Renderer: DefaultRenderer(),
		Site: SiteConfig{
			Title:       DefaultTitle,
			URL:         DefaultSiteURL,
			Description: DefaultDescription,
			FeedPath:    DefaultFeedPath,
		},
		Posts: PostsConfig{Path: DefaultPostsPath},
		Social: SocialConfig{
			Username:   DefaultUsername,
			Author:     DefaultAuthor,
			APIBase:    DefaultAPIBase,
			MaxResults: DefaultMaxResults,
			TokenEnv:   DefaultTokenEnv,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the renderer or the content jobs cannot use.
func (c *Config) Validate() error {
	r := c.Renderer
	switch {
	case r.TargetFPS <= 0:
		return invalid("renderer.target_fps", r.TargetFPS)
	case !finitePositive(r.CellSize):
		return invalid("renderer.cell_size", r.CellSize)
	case r.Levels < 1:
		return invalid("renderer.levels", r.Levels)
	case !finitePositive(r.Scale):
		return invalid("renderer.scale", r.Scale)
	case r.Octaves < 1:
		return invalid("renderer.octaves", r.Octaves)
	case !finitePositive(r.TimeStep):
		return invalid("renderer.time_step", r.TimeStep)
	case !finitePositive(r.TimeScale):
		return invalid("renderer.time_scale", r.TimeScale)
	}
	if _, err := noise.New(r.Field, r.Seed); err != nil {
		return invalid("renderer.field", r.Field)
	}
	if !strings.HasPrefix(c.Site.URL, "http://") && !strings.HasPrefix(c.Site.URL, "https://") {
		return invalid("site.url", c.Site.URL)
	}
	if c.Social.MaxResults < 5 || c.Social.MaxResults > 100 {
		return invalid("social.max_results", c.Social.MaxResults)
	}
	return nil
}

// finitePositive rejects NaN and +Inf along with zero and negatives.
func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func invalid(field string, v any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, field, v)
}

// RenderOptions converts the renderer section.
func (c *Config) RenderOptions() (render.Options, error) {
	r := c.Renderer
	field, err := noise.New(r.Field, r.Seed)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Seed:      r.Seed,
		Field:     field,
		TargetFPS: r.TargetFPS,
		CellSize:  r.CellSize,
		Levels:    r.Levels,
		Scale:     r.Scale,
		Octaves:   r.Octaves,
		TimeStep:  r.TimeStep,
		TimeScale: r.TimeScale,
		Linear:    r.LinearInterp,
	}, nil
}

// Token reads the social bearer token from the configured environment variable.
func (c *Config) Token() string {
	env := c.Social.TokenEnv
	if env == "" {
		env = DefaultTokenEnv
	}
	return os.Getenv(env)
}

// ApplyEnv lets the environment override the social username.
func (c *Config) ApplyEnv() {
	if u := os.Getenv(UsernameEnv); u != "" {
		c.Social.Username = u
	}
}
