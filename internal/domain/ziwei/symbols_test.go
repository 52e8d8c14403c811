package ziwei

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		base    int
		n       int
		modulus int
		want    int
	}{
		{name: "forward within range", base: 2, n: 3, modulus: 12, want: 5},
		{name: "forward wraps", base: 11, n: 2, modulus: 12, want: 1},
		{name: "backward wraps", base: 1, n: -3, modulus: 12, want: 10},
		{name: "large negative", base: 0, n: -25, modulus: 12, want: 11},
		{name: "stem cycle", base: 9, n: 1, modulus: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Offset(tt.base, tt.n, tt.modulus))
		})
	}
}

func TestParseStem(t *testing.T) {
	t.Parallel()

	for i, sym := range stemSymbols {
		got, err := ParseStem(sym)
		require.NoError(t, err)
		assert.Equal(t, Stem(i), got)

		got, err = ParseStem(stemPinyin[i])
		require.NoError(t, err)
		assert.Equal(t, Stem(i), got)
	}

	_, err := ParseStem("子")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
	_, err = ParseStem("")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestParseBranch(t *testing.T) {
	t.Parallel()

	for i, sym := range branchSymbols {
		got, err := ParseBranch(sym)
		require.NoError(t, err)
		assert.Equal(t, Branch(i), got)
	}

	got, err := ParseBranch(" Hai ")
	require.NoError(t, err)
	assert.Equal(t, BranchHai, got)

	_, err = ParseBranch("甲")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestParseStemBranch(t *testing.T) {
	t.Parallel()

	sb, err := ParseStemBranch("庚午")
	require.NoError(t, err)
	assert.Equal(t, StemBranch{Stem: StemGeng, Branch: BranchWu}, sb)
	assert.Equal(t, "庚午", sb.String())

	_, err = ParseStemBranch("庚")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
	_, err = ParseStemBranch("午庚")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestBranchAddAndTriad(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BranchZi, BranchHai.Add(1))
	assert.Equal(t, BranchHai, BranchZi.Add(-1))
	assert.Equal(t, BranchYin.Triad(), BranchWu.Triad())
	assert.Equal(t, BranchYin.Triad(), BranchXu.Triad())
	assert.NotEqual(t, BranchYin.Triad(), BranchMao.Triad())
}

func TestSymbolJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(StemBranch{Stem: StemGeng, Branch: BranchWu})
	require.NoError(t, err)
	assert.JSONEq(t, `{"stem":"庚","branch":"午"}`, string(data))

	var sb StemBranch
	require.NoError(t, json.Unmarshal([]byte(`{"stem":"geng","branch":"午"}`), &sb))
	assert.Equal(t, StemBranch{Stem: StemGeng, Branch: BranchWu}, sb)

	err = json.Unmarshal([]byte(`{"stem":"X","branch":"午"}`), &sb)
	assert.ErrorIs(t, err, ErrInvalidSymbol)

	_, err = json.Marshal(Stem(12))
	assert.Error(t, err)
}
