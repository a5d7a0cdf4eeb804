package internal

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// docCommentMarker introduces a documentation line at the top of a
// module source file.
const docCommentMarker = "---"

// ResolveDocs fills in documentation from the module's leading comment
// block when the module itself did not provide a description. An
// explicit docs.description always wins and is left untouched.
func ResolveDocs(cfg *ServerConfig, sourcePath string) error {
	if cfg == nil || cfg.Documentation != "" {
		return nil
	}
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read module source %s", sourcePath)
	}
	if doc, ok := ScanLeadingComments(string(content)); ok {
		cfg.Documentation = doc
	}
	return nil
}

// ScanLeadingComments collects consecutive doc-comment lines from the
// top of a source text, marker stripped, joined by newlines. Blank lines
// are skipped and never terminate the scan; the first non-blank line
// that is not a doc comment does. No doc lines means no documentation,
// not an empty string.
func ScanLeadingComments(source string) (string, bool) {
	var docLines []string
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimRight(line, "\r")
		if rest, ok := strings.CutPrefix(line, docCommentMarker); ok {
			docLines = append(docLines, strings.TrimPrefix(rest, " "))
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		break
	}
	if len(docLines) == 0 {
		return "", false
	}
	return strings.Join(docLines, "\n"), true
}
