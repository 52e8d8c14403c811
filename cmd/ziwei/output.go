package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format outputFormat, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}

// textWriter renders the human-readable output. Headings are bold only
// when w is a terminal.
type textWriter struct {
	w       io.Writer
	heading lipgloss.Style
}

func newTextWriter(w io.Writer) *textWriter {
	r := lipgloss.NewRenderer(w)
	return &textWriter{w: w, heading: r.NewStyle().Bold(true)}
}

func (t *textWriter) title(format string, args ...any) {
	fmt.Fprintln(t.w, t.heading.Render(fmt.Sprintf(format, args...)))
}

func (t *textWriter) summary(chart *ziwei.Chart) {
	f := chart.Facts
	t.title("Year %s  Lunar %d-%02d-%02d  Hour %s", f.Year, f.LunarYear, f.LunarMonth, f.LunarDay, f.Hour)
	fmt.Fprintf(t.w, "Life Palace %s  Body Palace %s  Bureau %s (%s)  Purple Star %s\n",
		chart.LifeBranch, chart.BodyBranch, chart.Bureau.Name(), chart.Bureau.Nayin, chart.PurpleStarBranch)
}

// palaces prints one row per palace in ring order.
func (t *textWriter) palaces(palaces []ziwei.Palace) error {
	tw := tabwriter.NewWriter(t.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPalace\tPillar\tStars\tTransformations")
	for _, p := range palaces {
		label := p.Name.Chinese()
		if p.IsBody {
			label += " (身)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			p.Ordinal, label, p.StemBranch(), starList(p.Stars), tagList(p.Transformations))
	}
	return tw.Flush()
}

func starList(stars []ziwei.Star) string {
	if len(stars) == 0 {
		return "-"
	}
	parts := make([]string, len(stars))
	for i, s := range stars {
		parts[i] = fmt.Sprintf("%s(%s)", s.Name, s.Brightness)
	}
	return strings.Join(parts, " ")
}

func tagList(tags []ziwei.TransformationTag) string {
	if len(tags) == 0 {
		return "-"
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = tag.String()
	}
	return strings.Join(parts, " ")
}
