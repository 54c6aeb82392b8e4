package sitegen

import (
	"bytes"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/summary"
)

// normalizeContent converts CRLF line endings and guarantees a trailing newline.
func normalizeContent(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	if !bytes.HasSuffix(b, []byte("\n")) {
		b = append(b, '\n')
	}
	return b
}

// writeIfChanged writes content to p unless p already holds the same text.
// In check mode a missing or differing file is a CategoryCheck error.
func (rs *runState) writeIfChanged(p string, content []byte) error {
	content = normalizeContent(content)

	existing, err := os.ReadFile(p)
	switch {
	case err == nil:
		if bytes.Equal(bytes.ReplaceAll(existing, []byte("\r\n"), []byte("\n")), content) {
			rs.report.Unchanged++
			return nil
		}
		if rs.check {
			return errors.CheckError("[CHECK] " + p + " is out of date (run sitegen generate).").
				WithPath(p).
				Build()
		}
	case os.IsNotExist(err):
		if rs.check {
			return errors.CheckError("[CHECK] " + p + " missing (run sitegen generate).").
				WithPath(p).
				Build()
		}
	default:
		return fsError(err, "failed to read generated file", p)
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fsError(err, "failed to create directory", filepath.Dir(p))
	}
	if err := os.WriteFile(p, content, 0o644); err != nil {
		return fsError(err, "failed to write generated file", p)
	}
	rs.report.Written = append(rs.report.Written, rs.rel(p))
	return nil
}

// writeJSONIfChanged writes v as sorted-key, two-space indented JSON.
func (rs *runState) writeJSONIfChanged(p string, v any) error {
	data, err := summary.EncodeSortedJSON(v)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode JSON").
			WithPath(p).
			Build()
	}
	return rs.writeIfChanged(p, data)
}
