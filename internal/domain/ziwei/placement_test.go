package ziwei

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurpleStarBranch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		bureau int
		day    int
		want   Branch
	}{
		{name: "water bureau first row", bureau: 2, day: 1, want: BranchYin},
		{name: "water bureau remainder zero", bureau: 2, day: 2, want: BranchMao},
		{name: "fire bureau remainder zero reads as six", bureau: 6, day: 6, want: BranchXu},
		{name: "fire bureau day thirty", bureau: 6, day: 30, want: BranchXu},
		{name: "earth bureau day seven", bureau: 5, day: 7, want: BranchHai},
		{name: "metal bureau day one", bureau: 4, day: 1, want: BranchHai},
		{name: "wood bureau day three", bureau: 3, day: 3, want: BranchYin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := PurpleStarBranch(tt.bureau, tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPurpleStarBranch_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, bureau := range []int{0, 1, 7} {
		_, err := PurpleStarBranch(bureau, 1)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	for _, day := range []int{0, 31} {
		_, err := PurpleStarBranch(2, day)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestPlaceAll_MainStarOffsets(t *testing.T) {
	t.Parallel()

	facts := workedExampleFacts()
	for purple := Branch(0); purple < BranchCount; purple++ {
		p := PlaceAll(purple, facts)
		assert.Equal(t, purple, p.Branch(ZiWei))
		assert.Equal(t, purple.Add(-1), p.Branch(TianJi))
		assert.Equal(t, purple.Add(3), p.Branch(TaiYang))
		assert.Equal(t, purple.Add(4), p.Branch(WuQu))
		assert.Equal(t, purple.Add(5), p.Branch(TianTong))
		assert.Equal(t, purple.Add(6), p.Branch(LianZhen))

		court := purple.Add(6)
		for i, star := range []StarName{TianFu, TaiYin, TanLang, JuMen, TianXiang, TianLiang, QiSha, PoJun} {
			assert.Equal(t, court.Add(i), p.Branch(star), star.String())
		}
	}
}

func TestPlaceAll_AuxiliaryStars(t *testing.T) {
	t.Parallel()

	p := PlaceAll(BranchHai, workedExampleFacts())

	tests := []struct {
		star StarName
		want Branch
	}{
		{ZuoFu, BranchMao},
		{YouBi, BranchHai},
		{WenChang, BranchShen},
		{WenQu, BranchWu},
		{TianKui, BranchChou},
		{TianYue, BranchWei},
		{LuCun, BranchShen},
		{QingYang, BranchYou},
		{TuoLuo, BranchWei},
		{TianMa, BranchShen},
		{HuoXing, BranchMao},
		{LingXing, BranchSi},
		{DiKong, BranchYou},
		{DiJie, BranchChou},
		{HongLuan, BranchYou},
		{TianXi, BranchMao},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Branch(tt.star), tt.star.String())
	}
}

func TestPlaceAll_PairedStarsMirror(t *testing.T) {
	t.Parallel()

	for month := 1; month <= 12; month++ {
		for hour := Branch(0); hour < BranchCount; hour++ {
			facts := BirthFacts{LunarMonth: month, LunarDay: 1, Hour: hour, Year: StemBranch{StemJia, BranchZi}}
			p := PlaceAll(BranchYin, facts)

			// 左辅/右弼 and 文昌/文曲 mirror around the 辰戌 axis.
			assert.Equal(t, BranchChen.Add(month-1), p.Branch(ZuoFu))
			assert.Equal(t, BranchXu.Add(-(month - 1)), p.Branch(YouBi))
			assert.Equal(t, BranchXu.Add(-int(hour)), p.Branch(WenChang))
			assert.Equal(t, BranchChen.Add(int(hour)), p.Branch(WenQu))
			assert.Equal(t, p.Branch(LuCun).Add(1), p.Branch(QingYang))
			assert.Equal(t, p.Branch(LuCun).Add(-1), p.Branch(TuoLuo))
			assert.Equal(t, p.Branch(HongLuan).Add(6), p.Branch(TianXi))
		}
	}
}

func TestPlaceAll_PoJunNeverJoinsZiWei(t *testing.T) {
	t.Parallel()

	// 破军 sits at 天府+7, one branch past 紫微, so 紫破 in one palace is
	// unreachable on a computed chart.
	for purple := Branch(0); purple < BranchCount; purple++ {
		p := PlaceAll(purple, workedExampleFacts())
		assert.Equal(t, purple.Add(1), p.Branch(PoJun))
		assert.NotEqual(t, p.Branch(ZiWei), p.Branch(PoJun))
	}
}

func TestBrightnessOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		star StarName
		b    Branch
		want Brightness
	}{
		{ZiWei, BranchWu, Temple},
		{ZiWei, BranchZi, Even},
		{TaiYang, BranchXu, Idle},
		{TaiYin, BranchHai, Temple},
		{TianJi, BranchWei, Fall},
		{WenChang, BranchSi, Temple},
		{QingYang, BranchChen, Temple},
		{TianKui, BranchChou, Even},
		{HongLuan, BranchYou, Even},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BrightnessOf(tt.star, tt.b), "%s at %s", tt.star, tt.b)
	}

	for star := StarName(0); star < PoJun+1; star++ {
		for b := Branch(0); b < BranchCount; b++ {
			level := BrightnessOf(star, b)
			assert.True(t, level >= Temple && level <= Fall)
		}
	}
}

func TestPlaceStars_WorkedExample(t *testing.T) {
	t.Parallel()

	ring, err := BuildRing(BranchHai, BranchMao, StemGeng)
	require.NoError(t, err)

	placed, err := PlaceStars(ring, BranchHai, workedExampleFacts())
	require.NoError(t, err)

	assert.Empty(t, ring[0].Stars, "input ring must not be mutated")

	total := 0
	for _, p := range placed {
		total += len(p.Stars)
	}
	assert.Equal(t, starCount, total)

	assert.Equal(t, []Star{
		{Name: ZiWei, Category: CategoryMain, Brightness: Prosper},
		{Name: QiSha, Category: CategoryMain, Brightness: Even},
		{Name: YouBi, Category: CategoryAuxiliary, Brightness: Even},
	}, placed[Life].Stars)

	assert.Equal(t, []StarName{TaiYin, WenQu}, placedStarNames(placed[Friends]))
	assert.Equal(t, Idle, placed[Friends].Stars[0].Brightness)
	assert.Equal(t, []StarName{JuMen, WenChang, LuCun, TianMa}, placedStarNames(placed[Property]))
}

func TestPlaceStars_InvalidInput(t *testing.T) {
	t.Parallel()

	ring, err := BuildRing(BranchHai, BranchMao, StemGeng)
	require.NoError(t, err)

	_, err = PlaceStars(ring, 12, workedExampleFacts())
	assert.ErrorIs(t, err, ErrInvalidSymbol)

	facts := workedExampleFacts()
	facts.LunarDay = 0
	_, err = PlaceStars(ring, BranchHai, facts)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func placedStarNames(p Palace) []StarName {
	out := make([]StarName, len(p.Stars))
	for i, s := range p.Stars {
		out[i] = s.Name
	}
	return out
}
