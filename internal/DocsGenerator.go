package internal

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DocsGenerator renders the extracted report as a human-readable server
// catalog: one section per server with its documentation and launch
// defaults.
type DocsGenerator struct {
	Title string
}

func NewDocsGenerator() *DocsGenerator {
	return &DocsGenerator{
		Title: "Server configurations",
	}
}

// GenerateMarkdown produces the catalog page. Sections follow the
// report's name order so the page is as stable as the JSON output.
func (g *DocsGenerator) GenerateMarkdown(report *Report) string {
	var sb strings.Builder
	names := report.Names()

	fmt.Fprintf(&sb, "# %s\n\n", g.Title)
	for _, name := range names {
		fmt.Fprintf(&sb, "- [%s](#%s)\n", name, strings.ToLower(name))
	}
	sb.WriteString("\n")

	for _, name := range names {
		g.writeSection(&sb, report.Get(name))
	}
	return sb.String()
}

// GenerateHTML renders the same catalog through the Markdown renderer.
func (g *DocsGenerator) GenerateHTML(report *Report) string {
	return RenderMarkdown(g.GenerateMarkdown(report))
}

func (g *DocsGenerator) writeSection(sb *strings.Builder, cfg *ServerConfig) {
	fmt.Fprintf(sb, "## %s\n\n", cfg.Name)

	if cfg.Documentation != "" {
		sb.WriteString(cfg.Documentation)
		sb.WriteString("\n\n")
	}

	if cmd := formatCmd(cfg.Cmd); cmd != "" {
		fmt.Fprintf(sb, "- Command: `%s`\n", cmd)
	}
	if len(cfg.Filetypes) > 0 {
		fmt.Fprintf(sb, "- Filetypes: %s\n", strings.Join(cfg.Filetypes, ", "))
	}
	if len(cfg.RootMarkers) > 0 {
		fmt.Fprintf(sb, "- Root markers: `%s`\n", strings.Join(cfg.RootMarkers, "`, `"))
	}
	if cfg.SingleFileSupport != nil {
		fmt.Fprintf(sb, "- Single file support: %v\n", *cfg.SingleFileSupport)
	}
	sb.WriteString("\n")

	if cfg.Settings != nil {
		sb.WriteString("Default settings:\n\n```json\n")
		sb.WriteString(formatJSONBlock(cfg.Settings))
		sb.WriteString("\n```\n\n")
	}
}

func formatCmd(cmd any) string {
	switch c := cmd.(type) {
	case nil:
		return ""
	case string:
		return c
	case []any:
		parts := make([]string, 0, len(c))
		for _, part := range c {
			parts = append(parts, fmt.Sprintf("%v", part))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", c)
	}
}

func formatJSONBlock(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
