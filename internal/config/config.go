package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/modular/internal/constants"
)

const (
	DefaultMaxNodes     = 100
	DefaultGraphOutput  = "public/graph/graph-data.json"
	DefaultPostsPerPage = 10
	DefaultLocale       = "en"
	DefaultOutputDir    = "public"
	DefaultLanguage     = "en"
	DefaultPageSize     = 100
	DefaultTimeout      = 30 * time.Second
)

type SiteConfig struct {
	URL         string `mapstructure:"url"         yaml:"url"         validate:"omitempty,url"`
	Title       string `mapstructure:"title"       yaml:"title"`
	Description string `mapstructure:"description" yaml:"description"`
	Author      string `mapstructure:"author"      yaml:"author"`
	Language    string `mapstructure:"language"    yaml:"language"`
}

type StrapiConfig struct {
	URL               string        `mapstructure:"url"                 yaml:"url"                 validate:"required,url"`
	Token             string        `mapstructure:"token"               yaml:"token"`
	PageSize          int           `mapstructure:"page_size"           yaml:"page_size"           validate:"gte=0,lte=1000"`
	Timeout           time.Duration `mapstructure:"timeout"             yaml:"timeout"             validate:"gte=0"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" yaml:"requests_per_second" validate:"gte=0"`
	CacheSize         int           `mapstructure:"cache_size"          yaml:"cache_size"          validate:"gte=0"`
}

type GraphConfig struct {
	MaxNodes       int    `mapstructure:"max_nodes"       yaml:"max_nodes"`
	Output         string `mapstructure:"output"          yaml:"output"          validate:"required"`
	ResolveForward bool   `mapstructure:"resolve_forward" yaml:"resolve_forward"`
}

type ContentTypes struct {
	Projects bool `mapstructure:"projects" yaml:"projects"`
	Docs     bool `mapstructure:"docs"     yaml:"docs"`
}

type PublishConfig struct {
	Target    string `mapstructure:"target"     yaml:"target"     validate:"omitempty,oneof=dir s3 minio"`
	Bucket    string `mapstructure:"bucket"     yaml:"bucket"`
	Prefix    string `mapstructure:"prefix"     yaml:"prefix"`
	Region    string `mapstructure:"region"     yaml:"region"`
	Endpoint  string `mapstructure:"endpoint"   yaml:"endpoint"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"    yaml:"use_ssl"`
}

type Config struct {
	Site         SiteConfig    `mapstructure:"site"           yaml:"site"`
	Strapi       StrapiConfig  `mapstructure:"strapi"         yaml:"strapi"`
	Graph        GraphConfig   `mapstructure:"graph"          yaml:"graph"`
	PostsPerPage int           `mapstructure:"posts_per_page" yaml:"posts_per_page" validate:"gt=0"`
	ContentTypes ContentTypes  `mapstructure:"content_types"  yaml:"content_types"`
	Locale       string        `mapstructure:"locale"         yaml:"locale"`
	OutputDir    string        `mapstructure:"output_dir"     yaml:"output_dir"     validate:"required"`
	Publish      PublishConfig `mapstructure:"publish"        yaml:"publish"`

	path string
}

// Default returns a config with every default filled in and no CMS URL.
func Default() *Config {
	return &Config{
		Site: SiteConfig{Language: DefaultLanguage},
		Strapi: StrapiConfig{
			PageSize: DefaultPageSize,
			Timeout:  DefaultTimeout,
		},
		Graph: GraphConfig{
			MaxNodes: DefaultMaxNodes,
			Output:   DefaultGraphOutput,
		},
		PostsPerPage: DefaultPostsPerPage,
		Locale:       DefaultLocale,
		OutputDir:    DefaultOutputDir,
		Publish:      PublishConfig{Target: "dir"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("site.language", d.Site.Language)
	v.SetDefault("strapi.page_size", d.Strapi.PageSize)
	v.SetDefault("strapi.timeout", d.Strapi.Timeout)
	v.SetDefault("strapi.requests_per_second", 0)
	v.SetDefault("strapi.cache_size", 0)
	v.SetDefault("graph.max_nodes", d.Graph.MaxNodes)
	v.SetDefault("graph.output", d.Graph.Output)
	v.SetDefault("graph.resolve_forward", false)
	v.SetDefault("posts_per_page", d.PostsPerPage)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("publish.target", d.Publish.Target)
}

// LoadEnv reads the .env file in the working directory, if there is one.
// Variables already present in the environment win.
func LoadEnv() error {
	if _, err := os.Stat(constants.EnvFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(constants.EnvFile); err != nil {
		return errors.Wrapf(err, "load %s", constants.EnvFile)
	}
	return nil
}

// Load reads the config file at path and overlays environment variables.
// STRAPI_URL and STRAPI_TOKEN override the strapi section, and any key can
// be set as MODULAR_<SECTION>_<KEY>.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType(constants.ConfigFileType)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("strapi.url", "STRAPI_URL", constants.EnvPrefix+"_STRAPI_URL")
	v.BindEnv("strapi.token", "STRAPI_TOKEN", constants.EnvPrefix+"_STRAPI_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			return nil, &ConfigInitError{msg: "no config file found at " + path}
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from.
func (cfg *Config) Path() string {
	return cfg.path
}

// Save writes the config as YAML to path, creating the directory.
func (cfg *Config) Save(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	cfg.path = path
	return nil
}

// RequireSite reports whether the site section can produce absolute URLs.
func (cfg *Config) RequireSite() error {
	if strings.TrimSpace(cfg.Site.URL) == "" {
		return errors.WithHint(
			&ConfigInitError{msg: "site.url is not set"},
			"feeds and sitemaps need an absolute site URL, e.g. https://example.com",
		)
	}
	return nil
}
