package generation

import (
	"testing"

	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChart(t *testing.T) *ziwei.Chart {
	t.Helper()
	chart, err := ziwei.ComputeChart(ziwei.BirthFacts{
		LunarYear:  1990,
		LunarMonth: 12,
		LunarDay:   7,
		Hour:       ziwei.BranchYin,
		Year:       ziwei.StemBranch{Stem: ziwei.StemGeng, Branch: ziwei.BranchWu},
	})
	require.NoError(t, err)
	return chart
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	chart := sampleChart(t)
	matches, err := ziwei.AnalyzePatterns(chart)
	require.NoError(t, err)

	prompt, err := BuildPrompt(ReadingRequest{ProfileName: "Mei", Chart: chart, Patterns: matches})
	require.NoError(t, err)

	assert.Contains(t, prompt, "reading for Mei")
	assert.Contains(t, prompt, "Year pillar: 庚午")
	assert.Contains(t, prompt, "土五局")
	assert.Contains(t, prompt, "Life Palace (命宫) 丁亥: 紫微(旺) 七杀(平) 右弼(平)")
	assert.Contains(t, prompt, "太阳化禄")
	assert.Contains(t, prompt, "body palace")
	assert.Contains(t, prompt, "Recognised patterns:")
}

func TestBuildPrompt_NoPatterns(t *testing.T) {
	t.Parallel()

	prompt, err := BuildPrompt(ReadingRequest{Chart: sampleChart(t)})
	require.NoError(t, err)
	assert.Contains(t, prompt, "reading for the native")
	assert.Contains(t, prompt, "No classical patterns were recognised.")
}

func TestBuildPrompt_NilChart(t *testing.T) {
	t.Parallel()

	_, err := BuildPrompt(ReadingRequest{ProfileName: "Mei"})
	assert.ErrorIs(t, err, ErrEmptyChart)
}
