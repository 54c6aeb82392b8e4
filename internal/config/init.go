package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Example returns the configuration written by `sitegen init`.
func Example() *Config {
	return &Config{
		RepoRoot:     defaultRepoRoot,
		DocsDir:      defaultDocsDir,
		SiteDir:      defaultSiteDir,
		VersionsFile: defaultVersionsFile,
		SummaryFile:  defaultSummaryFile,
		Watch: WatchConfig{
			Debounce: Duration(defaultDebounce),
			Interval: Duration(10 * time.Minute),
		},
		Notify: NotifyConfig{
			NATSURL: "${SITEGEN_NATS_URL}",
			Subject: defaultSubject,
		},
		History:   HistoryConfig{Path: ".sitegen/history.db"},
		Redirects: RedirectsConfig{Aliases: defaultAliases()},
	}
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithPath(path).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example config").Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithPath(path).
			Build()
	}
	return nil
}
