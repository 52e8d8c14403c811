package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var workedExampleFlags = []string{
	"--year", "1990", "--month", "12", "--day", "7",
	"--hour", "寅", "--year-stem", "庚", "--year-branch", "午",
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFactsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "facts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const workedExampleYAML = `lunar_year: 1990
lunar_month: 12
lunar_day: 7
hour: yin
year: 庚午
`

func TestChartCommand_JSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, append([]string{"chart", "--output", "json"}, workedExampleFlags...)...)
	require.NoError(t, err)

	var chart ziwei.Chart
	require.NoError(t, json.Unmarshal([]byte(out), &chart))
	assert.Equal(t, ziwei.BranchHai, chart.LifeBranch)
	assert.Equal(t, 5, chart.Bureau.Number)
	assert.Equal(t, ziwei.Life, chart.Palaces[0].Name)
}

func TestChartCommand_Text(t *testing.T) {
	t.Parallel()

	out, err := execute(t, append([]string{"chart"}, workedExampleFlags...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Year 庚午  Lunar 1990-12-07  Hour 寅")
	assert.Contains(t, out, "Life Palace 亥")
	assert.Contains(t, out, "Bureau 土五局")
	assert.Contains(t, out, "命宫")
	assert.Contains(t, out, "父母")
}

func TestChartCommand_FactsFileYAML(t *testing.T) {
	t.Parallel()

	path := writeFactsFile(t, workedExampleYAML)
	out, err := execute(t, "chart", "--facts", path, "-o", "yaml")
	require.NoError(t, err)

	var decoded struct {
		LifeBranch string `yaml:"life_branch"`
		Bureau     struct {
			Number int `yaml:"number"`
		} `yaml:"bureau"`
		Palaces []map[string]any `yaml:"palaces"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "亥", decoded.LifeBranch)
	assert.Equal(t, 5, decoded.Bureau.Number)
	assert.Len(t, decoded.Palaces, 12)
}

func TestChartCommand_Errors(t *testing.T) {
	t.Parallel()

	facts := writeFactsFile(t, workedExampleYAML)
	unknownField := writeFactsFile(t, workedExampleYAML+"gender: f\n")
	badYear := writeFactsFile(t, "lunar_year: 1990\nlunar_month: 12\nlunar_day: 7\nhour: 寅\nyear: 庚\n")

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{name: "missing flag", args: []string{"chart", "--month", "12"}, wantMsg: "missing --year"},
		{
			name:    "facts with flags",
			args:    []string{"chart", "--facts", facts, "--day", "7"},
			wantErr: errFactsConflict,
		},
		{name: "unknown yaml field", args: []string{"chart", "--facts", unknownField}, wantMsg: "gender"},
		{name: "bad year pair", args: []string{"chart", "--facts", badYear}, wantErr: ziwei.ErrInvalidSymbol},
		{name: "missing facts file", args: []string{"chart", "--facts", filepath.Join(t.TempDir(), "nope.yaml")}, wantMsg: "failed to open facts file"},
		{
			name:    "bad hour",
			args:    []string{"chart", "--year", "1990", "--month", "12", "--day", "7", "--hour", "dragon", "--year-stem", "庚", "--year-branch", "午"},
			wantErr: ziwei.ErrInvalidSymbol,
		},
		{
			name:    "day out of range",
			args:    []string{"chart", "--year", "1990", "--month", "12", "--day", "31", "--hour", "寅", "--year-stem", "庚", "--year-branch", "午"},
			wantErr: ziwei.ErrInvalidInput,
		},
		{name: "bad output", args: []string{"chart", "--facts", facts, "--output", "xml"}, wantMsg: "unknown output format"},
		{name: "stray argument", args: []string{"chart", "extra", "--facts", facts}, wantMsg: "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRelationsCommand(t *testing.T) {
	t.Parallel()

	facts := writeFactsFile(t, workedExampleYAML)

	t.Run("life palace json", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "relations", "life", "--facts", facts, "-o", "json")
		require.NoError(t, err)

		var got struct {
			Palace   string               `json:"palace"`
			Relation ziwei.PalaceRelation `json:"relation"`
			Palaces  []ziwei.Palace       `json:"palaces"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "Life Palace", got.Palace)
		assert.Equal(t, ziwei.PalaceRelation{Target: 0, Opposite: 6, Trine: [2]int{4, 8}}, got.Relation)
		require.Len(t, got.Palaces, 4)
		assert.Equal(t, ziwei.Life, got.Palaces[0].Name)
		assert.Equal(t, ziwei.Travel, got.Palaces[1].Name)
	})

	t.Run("chinese label text", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "relations", "命宫", "--facts", facts)
		require.NoError(t, err)
		assert.Contains(t, out, "命宫 Life Palace (亥)")
		assert.Contains(t, out, "Opposite 迁移  Trine 财帛 官禄")
	})

	t.Run("unknown palace", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "relations", "kitchen", "--facts", facts)
		assert.ErrorIs(t, err, ziwei.ErrInvalidInput)
	})

	t.Run("palace argument required", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "relations", "--facts", facts)
		assert.Error(t, err)
	})
}

func TestPatternsCommand(t *testing.T) {
	t.Parallel()

	facts := writeFactsFile(t, workedExampleYAML)

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "patterns", "--facts", facts, "--output", "json")
		require.NoError(t, err)

		var got struct {
			LifeBranch string               `json:"life_branch"`
			Patterns   []ziwei.PatternMatch `json:"patterns"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "亥", got.LifeBranch)
		ids := make([]string, len(got.Patterns))
		for i, m := range got.Patterns {
			ids[i] = m.ID
		}
		assert.Equal(t, []string{"junchen-qinghui", "zifu-chaoyuan"}, ids)
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "patterns", "--facts", facts)
		require.NoError(t, err)
		assert.Contains(t, out, "Patterns for Life Palace 亥")
		assert.Contains(t, out, "junchen-qinghui")
		assert.Contains(t, out, "zifu-chaoyuan")
	})
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"text", "JSON", " yaml "} {
		_, err := parseOutputFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := parseOutputFormat("toml")
	assert.Error(t, err)
}
