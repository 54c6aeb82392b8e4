package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Validate checks a configuration after defaults have been applied.
func Validate(cfg *Config) error {
	chain := foundation.NewValidatorChain[*Config](
		foundation.NotBlank("repo_root", func(c *Config) string { return c.RepoRoot }),
		foundation.NotBlank("docs_dir", func(c *Config) string { return c.DocsDir }),
		foundation.NotBlank("site_dir", func(c *Config) string { return c.SiteDir }),
		foundation.NotBlank("versions_file", func(c *Config) string { return c.VersionsFile }),
		foundation.NotBlank("summary_file", func(c *Config) string { return c.SummaryFile }),
		foundation.BareFileName("summary_file", func(c *Config) string { return c.SummaryFile }),
		foundation.NonNegative("watch.debounce", func(c *Config) Duration { return c.Watch.Debounce }),
		foundation.NonNegative("watch.interval", func(c *Config) Duration { return c.Watch.Interval }),
		foundation.Each("redirects.aliases", func(c *Config) []Alias { return c.Redirects.Aliases }, validateAlias),
		uniqueAliasSources,
	)
	return chain.Validate(cfg).ToError(errors.CategoryConfig)
}

func validateAlias(field string, a Alias) foundation.ValidationResult {
	switch {
	case !strings.HasPrefix(a.From, "/"):
		return foundation.Fail(field, "absolute_path", "from must be a site path starting with /")
	case !strings.HasPrefix(a.To, "/docs/") || strings.HasSuffix(a.To, "/"):
		return foundation.Fail(field, "docs_path", "to must be a docs page path like /docs/section/page")
	case a.From == a.To:
		return foundation.Fail(field, "self_redirect", "from and to must differ")
	case strings.ContainsAny(a.From+a.To, "'\\`\n"):
		return foundation.Fail(field, "characters", "paths must not contain quotes, backslashes or newlines")
	}
	return foundation.Valid()
}

func uniqueAliasSources(c *Config) foundation.ValidationResult {
	result := foundation.Valid()
	seen := make(map[string]bool, len(c.Redirects.Aliases))
	for i, a := range c.Redirects.Aliases {
		if seen[a.From] {
			result = result.Combine(foundation.Fail(fmt.Sprintf("redirects.aliases[%d]", i), "duplicate",
				"duplicate alias source "+a.From))
		}
		seen[a.From] = true
	}
	return result
}
