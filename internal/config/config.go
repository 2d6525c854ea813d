package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "SKINGALLERY"

// Config describes the application level configuration.
type Config struct {
	// RepoRoot is the directory media paths in the manifest are relative to.
	RepoRoot string `mapstructure:"repo_root"`
	// AssetsDir and Subject form the candidate roots <repo>/<assets>/<subject>[/skins].
	AssetsDir string `mapstructure:"assets_dir"`
	Subject   string `mapstructure:"subject"`
	// AssetsRoot, when set, is used as the skins root directly.
	AssetsRoot string   `mapstructure:"assets_root"`
	Champion   string   `mapstructure:"champion"`
	Output     string   `mapstructure:"output"`
	S3         S3Config `mapstructure:"s3"`
}

// S3Config holds the options for accessing the object store.
type S3Config struct {
	Host            string `mapstructure:"host"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	SessionToken    string `mapstructure:"session_token"`
	ForcePathStyle  bool   `mapstructure:"force_path_style"`
	ManifestKey     string `mapstructure:"manifest_key"`
}

var defaults = map[string]interface{}{
	"repo_root":            ".",
	"assets_dir":           "assets",
	"subject":              "ezreal",
	"assets_root":          "",
	"champion":             "Ezreal",
	"output":               filepath.Join("data", "manifest.json"),
	"s3.host":              "",
	"s3.bucket":            "",
	"s3.region":            "us-east-1",
	"s3.access_key_id":     "",
	"s3.secret_access_key": "",
	"s3.session_token":     "",
	"s3.force_path_style":  false,
	"s3.manifest_key":      "data/manifest.json",
}

// DefaultSearchPaths lists the config files tried when none is given.
var DefaultSearchPaths = []string{
	"./skingallery.json",
	"./skingallery.yaml",
	"/etc/skingallery.json",
}

// LoadFirst builds the configuration from the first existing file in paths,
// then applies SKINGALLERY_* environment overrides. Having no file at all is
// not an error: defaults and the environment still apply.
func LoadFirst(paths ...string) (*Config, error) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
		return Load(path)
	}
	return Load("")
}

// Load reads configuration from a single file path; an empty path means
// defaults plus environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the options required to reach the object store.
func (c *S3Config) Validate() error {
	if c.Host == "" {
		return errors.New("config.s3.host must be set")
	}
	if c.Bucket == "" {
		return errors.New("config.s3.bucket must be set")
	}
	return nil
}
