package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
)

//go:embed prompt.tmpl
var promptSource string

var promptTemplate = template.Must(template.New("reading").Funcs(template.FuncMap{
	"stars":           formatStars,
	"transformations": formatTransformations,
	"palaces":         formatPalaceNames,
}).Parse(promptSource))

// BuildPrompt renders the model prompt for a reading request.
func BuildPrompt(req ReadingRequest) (string, error) {
	if req.Chart == nil {
		return "", ErrEmptyChart
	}
	name := strings.TrimSpace(req.ProfileName)
	if name == "" {
		name = "the native"
	}

	data := struct {
		Name     string
		Chart    *ziwei.Chart
		Palaces  []ziwei.Palace
		Patterns []ziwei.PatternMatch
	}{
		Name:     name,
		Chart:    req.Chart,
		Palaces:  req.Chart.Palaces[:],
		Patterns: req.Patterns,
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

func formatStars(stars []ziwei.Star) string {
	if len(stars) == 0 {
		return "none"
	}
	parts := make([]string, len(stars))
	for i, s := range stars {
		parts[i] = s.Name.String() + "(" + s.Brightness.String() + ")"
	}
	return strings.Join(parts, " ")
}

func formatTransformations(tags []ziwei.TransformationTag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func formatPalaceNames(names []ziwei.PalaceName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}
