package ziwei

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBureau_TotalOverAllPairs(t *testing.T) {
	t.Parallel()

	for s := Stem(0); s < StemCount; s++ {
		for b := Branch(0); b < BranchCount; b++ {
			sb := StemBranch{Stem: s, Branch: b}
			got, err := ResolveBureau(sb)
			require.NoError(t, err, sb.String())
			assert.GreaterOrEqual(t, got.Number, 2, sb.String())
			assert.LessOrEqual(t, got.Number, 6, sb.String())
			assert.NotEmpty(t, got.Nayin, sb.String())

			again, err := ResolveBureau(sb)
			require.NoError(t, err)
			assert.Equal(t, got, again, "resolution must be deterministic")
		}
	}
}

func TestResolveBureau_KnownNayin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pair    string
		nayin   string
		element Element
		number  int
	}{
		{pair: "甲子", nayin: "海中金", element: Metal, number: 4},
		{pair: "丙寅", nayin: "炉中火", element: Fire, number: 6},
		{pair: "丁亥", nayin: "屋上土", element: Earth, number: 5},
		{pair: "壬辰", nayin: "长流水", element: Water, number: 2},
		{pair: "庚寅", nayin: "松柏木", element: Wood, number: 3},
		{pair: "癸亥", nayin: "大海水", element: Water, number: 2},
	}

	for _, tt := range tests {
		t.Run(tt.pair, func(t *testing.T) {
			t.Parallel()
			sb, err := ParseStemBranch(tt.pair)
			require.NoError(t, err)

			got, err := ResolveBureau(sb)
			require.NoError(t, err)
			assert.Equal(t, tt.nayin, got.Nayin)
			assert.Equal(t, tt.element, got.Element)
			assert.Equal(t, tt.number, got.Number)
		})
	}
}

func TestResolveBureau_Name(t *testing.T) {
	t.Parallel()

	got, err := ResolveBureau(StemBranch{Stem: StemDing, Branch: BranchHai})
	require.NoError(t, err)
	assert.Equal(t, "土五局", got.Name())
}

func TestResolveBureau_InvalidPair(t *testing.T) {
	t.Parallel()

	_, err := ResolveBureau(StemBranch{Stem: 10, Branch: BranchZi})
	assert.ErrorIs(t, err, ErrInvalidSymbol)
	_, err = ResolveBureau(StemBranch{Stem: StemJia, Branch: -1})
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}
