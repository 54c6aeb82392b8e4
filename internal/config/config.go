// Package config loads sitegen.yaml: repository layout, watch behaviour,
// notification and history settings, and redirect aliases.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "sitegen.yaml"

// Config is the full sitegen configuration.
type Config struct {
	RepoRoot     string          `yaml:"repo_root"`
	DocsDir      string          `yaml:"docs_dir"`      // relative to repo_root
	SiteDir      string          `yaml:"site_dir"`      // relative to repo_root
	VersionsFile string          `yaml:"versions_file"` // relative to repo_root
	SummaryFile  string          `yaml:"summary_file"`  // file name inside each version tree
	Watch        WatchConfig     `yaml:"watch"`
	Notify       NotifyConfig    `yaml:"notify"`
	History      HistoryConfig   `yaml:"history"`
	Redirects    RedirectsConfig `yaml:"redirects"`
}

// WatchConfig controls `sitegen watch`.
type WatchConfig struct {
	Debounce Duration `yaml:"debounce"`
	Interval Duration `yaml:"interval"` // zero disables the periodic drift job
}

// NotifyConfig controls run event publication.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// HistoryConfig controls the run history store. An empty path disables it.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// RedirectsConfig lists extra client-side redirects emitted into
// redirects.generated.ts.
type RedirectsConfig struct {
	Aliases []Alias `yaml:"aliases"`
}

// Alias redirects From (a legacy path) to To, an existing page under the
// current docs (/docs/...).
type Alias struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Duration is a time.Duration that unmarshals from strings like "300ms".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// DocsPath returns the absolute-or-relative path of the docs tree.
func (c *Config) DocsPath() string { return filepath.Join(c.RepoRoot, c.DocsDir) }

// SitePath returns the path of the Docusaurus site directory.
func (c *Config) SitePath() string { return filepath.Join(c.RepoRoot, c.SiteDir) }

// VersionsPath returns the path of the toolchain versions file.
func (c *Config) VersionsPath() string { return filepath.Join(c.RepoRoot, c.VersionsFile) }

// HistoryPath returns the history database path, or "" when disabled.
func (c *Config) HistoryPath() string {
	if c.History.Path == "" || filepath.IsAbs(c.History.Path) {
		return c.History.Path
	}
	return filepath.Join(c.RepoRoot, c.History.Path)
}

// Load reads the configuration at path. A missing file is not an error:
// defaults apply. Environment variables referenced as ${VAR} are expanded
// after .env files next to the config have been loaded.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	loadEnvFiles(filepath.Dir(path))

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config").
				WithPath(path).
				Fatal().
				FixInputs().
				Build()
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config").
			WithPath(path).
			Fatal().
			Build()
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}
