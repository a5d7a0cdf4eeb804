package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanLeadingComments(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
		found  bool
	}{
		{
			name:   "two doc lines then code",
			source: "--- Line one\n--- Line two\nreturn {}\n",
			want:   "Line one\nLine two",
			found:  true,
		},
		{
			name:   "blank lines before docs are skipped",
			source: "\n\n--- Docs\nreturn {}\n",
			want:   "Docs",
			found:  true,
		},
		{
			name:   "blank line inside block does not terminate",
			source: "--- First\n\n--- Second\nreturn {}\n",
			want:   "First\nSecond",
			found:  true,
		},
		{
			name:   "plain comment terminates",
			source: "--- Doc\n-- not a doc\n--- after\nreturn {}\n",
			want:   "Doc",
			found:  true,
		},
		{
			name:   "code terminates immediately",
			source: "return {}\n--- too late\n",
			found:  false,
		},
		{
			name:   "no docs at all",
			source: "local x = 1\nreturn { x = x }\n",
			found:  false,
		},
		{
			name:   "empty source",
			source: "",
			found:  false,
		},
		{
			name:   "marker with no trailing space",
			source: "---bare\nreturn {}\n",
			want:   "bare",
			found:  true,
		},
		{
			name:   "single leading space stripped only once",
			source: "---  double\nreturn {}\n",
			want:   " double",
			found:  true,
		},
		{
			name:   "crlf line endings",
			source: "--- Windows\r\nreturn {}\r\n",
			want:   "Windows",
			found:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ScanLeadingComments(tt.source)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if got != tt.want {
				t.Errorf("docs = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveDocsPrefersExistingDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srv.lua")
	if err := os.WriteFile(path, []byte("--- from comments\nreturn {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &ServerConfig{Name: "srv", Documentation: "from docs table"}
	if err := ResolveDocs(cfg, path); err != nil {
		t.Fatalf("ResolveDocs failed: %v", err)
	}
	if cfg.Documentation != "from docs table" {
		t.Errorf("Documentation = %q, explicit description must win", cfg.Documentation)
	}
}

func TestResolveDocsFallsBackToComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srv.lua")
	if err := os.WriteFile(path, []byte("--- from comments\nreturn {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &ServerConfig{Name: "srv"}
	if err := ResolveDocs(cfg, path); err != nil {
		t.Fatalf("ResolveDocs failed: %v", err)
	}
	if cfg.Documentation != "from comments" {
		t.Errorf("Documentation = %q, want comment fallback", cfg.Documentation)
	}
}

func TestResolveDocsAbsentStaysAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srv.lua")
	if err := os.WriteFile(path, []byte("return {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &ServerConfig{Name: "srv"}
	if err := ResolveDocs(cfg, path); err != nil {
		t.Fatalf("ResolveDocs failed: %v", err)
	}
	if cfg.Documentation != "" {
		t.Errorf("Documentation = %q, want absent", cfg.Documentation)
	}
}

func TestResolveDocsMissingFile(t *testing.T) {
	cfg := &ServerConfig{Name: "srv"}
	if err := ResolveDocs(cfg, filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("ResolveDocs on a missing file should fail")
	}
}
