// Package versions reads the toolchain version list that drives which
// versioned documentation trees are published.
package versions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)$`)

// Semver is a strict X.Y.Z version.
type Semver struct {
	Major, Minor, Patch int
}

// ParseSemver parses a strict X.Y.Z version without prefix or suffix.
func ParseSemver(v string) (Semver, error) {
	m := semverRE.FindStringSubmatch(v)
	if m == nil {
		return Semver{}, fmt.Errorf("unsupported version format (expected X.Y.Z): %s", v)
	}
	var parts [3]int
	for i, raw := range m[1:] {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Semver{}, fmt.Errorf("unsupported version format (component out of range): %s", v)
		}
		parts[i] = n
	}
	return Semver{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// Compare orders versions numerically: -1 when a < b, 0 when equal, +1 when a > b.
func (a Semver) Compare(b Semver) int {
	if c := a.Major - b.Major; c != 0 {
		return sign(c)
	}
	if c := a.Minor - b.Minor; c != 0 {
		return sign(c)
	}
	return sign(a.Patch - b.Patch)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

type entry struct {
	ToolchainVersion *string `json:"toolchain_version"`
}

// Read loads the versions file and returns its versions newest first.
func Read(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("missing versions file").
				WithPath(path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read versions file").
			WithPath(path).
			Build()
	}
	list, err := Parse(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid versions file "+path).
			Fatal().
			FixInputs().
			WithPath(path).
			Build()
	}
	return list, nil
}

// Parse decodes {"versions":[{"toolchain_version":"X.Y.Z", ...}]} and sorts
// the result newest to oldest. Extra fields on entries are ignored.
func Parse(data []byte) ([]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	raw, ok := doc["versions"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, fmt.Errorf("versions must be a list")
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("versions must be a list: %w", err)
	}

	out := make([]string, 0, len(entries))
	parsed := make(map[string]Semver, len(entries))
	for _, rawEntry := range entries {
		if !bytes.HasPrefix(bytes.TrimSpace(rawEntry), []byte("{")) {
			return nil, fmt.Errorf("invalid versions entry (expected object): %s", rawEntry)
		}
		var e entry
		if err := json.Unmarshal(rawEntry, &e); err != nil || e.ToolchainVersion == nil || *e.ToolchainVersion == "" {
			return nil, fmt.Errorf("invalid versions entry: toolchain_version must be non-empty string")
		}
		v := *e.ToolchainVersion
		sv, err := ParseSemver(v)
		if err != nil {
			return nil, err
		}
		if _, dup := parsed[v]; dup {
			return nil, fmt.Errorf("duplicate toolchain_version: %s", v)
		}
		parsed[v] = sv
		out = append(out, v)
	}

	slices.SortStableFunc(out, func(a, b string) int {
		return parsed[b].Compare(parsed[a])
	})
	return out, nil
}
