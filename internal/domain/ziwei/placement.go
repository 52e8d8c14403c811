package ziwei

import "fmt"

// purpleTable gives the Purple Star branch by bureau number and the
// remainder of lunar day mod bureau (0 read as the bureau itself).
var purpleTable = map[int][]Branch{
	2: {BranchYin, BranchMao},
	3: {BranchChen, BranchChou, BranchYin},
	4: {BranchHai, BranchChen, BranchChou, BranchYin},
	5: {BranchWu, BranchHai, BranchChen, BranchChou, BranchYin},
	6: {BranchYou, BranchWu, BranchHai, BranchChen, BranchChou, BranchXu},
}

// PurpleStarBranch places 紫微 from the bureau number and lunar day.
func PurpleStarBranch(bureau, day int) (Branch, error) {
	row, ok := purpleTable[bureau]
	if !ok {
		return 0, fmt.Errorf("%w: bureau number %d", ErrInvalidInput, bureau)
	}
	if day < 1 || day > 30 {
		return 0, fmt.Errorf("%w: lunar day %d", ErrInvalidInput, day)
	}
	r := day % bureau
	if r == 0 {
		r = bureau
	}
	return row[r-1], nil
}

type offsetRule struct {
	star   StarName
	offset int
}

// purpleGroup is anchored at 紫微.
var purpleGroup = []offsetRule{
	{ZiWei, 0}, {TianJi, -1}, {TaiYang, 3}, {WuQu, 4}, {TianTong, 5}, {LianZhen, 6},
}

// courtGroup is anchored opposite 紫微, at 天府.
var courtGroup = []offsetRule{
	{TianFu, 0}, {TaiYin, 1}, {TanLang, 2}, {JuMen, 3},
	{TianXiang, 4}, {TianLiang, 5}, {QiSha, 6}, {PoJun, 7},
}

// Nobility pair (天魁, 天钺) by year stem.
var nobleTable = [StemCount][2]Branch{
	{BranchChou, BranchWei}, // 甲
	{BranchZi, BranchShen},  // 乙
	{BranchHai, BranchYou},  // 丙
	{BranchHai, BranchYou},  // 丁
	{BranchChou, BranchWei}, // 戊
	{BranchZi, BranchShen},  // 己
	{BranchChou, BranchWei}, // 庚
	{BranchWu, BranchYin},   // 辛
	{BranchMao, BranchSi},   // 壬
	{BranchMao, BranchSi},   // 癸
}

// 禄存 by year stem.
var luCunTable = [StemCount]Branch{
	BranchYin, BranchMao, BranchSi, BranchWu, BranchSi,
	BranchWu, BranchShen, BranchYou, BranchHai, BranchZi,
}

// Triad-indexed tables use Branch.Triad: 申子辰, 巳酉丑, 寅午戌, 亥卯未.
var (
	tianMaTable    = [4]Branch{BranchYin, BranchHai, BranchShen, BranchSi}
	huoXingStarts  = [4]Branch{BranchYin, BranchMao, BranchChou, BranchYou}
	lingXingStarts = [4]Branch{BranchXu, BranchXu, BranchMao, BranchXu}
)

func stemEntry[T any](table string, rows []T, s Stem) T {
	if !s.Valid() || int(s) >= len(rows) {
		panic(missf(table, s))
	}
	return rows[s]
}

func triadEntry(table string, rows [4]Branch, b Branch) Branch {
	if !b.Valid() {
		panic(missf(table, b))
	}
	return rows[b.Triad()]
}

// Placements records the branch of every star on a chart.
type Placements [starCount]Branch

// Branch returns where the named star sits.
func (p *Placements) Branch(name StarName) Branch {
	if !name.Valid() {
		panic(missf("placements", name))
	}
	return p[name]
}

// PlaceAll computes the branch of every main and auxiliary star.
func PlaceAll(purple Branch, facts BirthFacts) Placements {
	var p Placements
	for _, r := range purpleGroup {
		p[r.star] = purple.Add(r.offset)
	}
	court := purple.Add(6)
	for _, r := range courtGroup {
		p[r.star] = court.Add(r.offset)
	}

	month := facts.LunarMonth - 1
	hour := int(facts.Hour)
	stem := facts.Year.Stem
	year := facts.Year.Branch

	p[ZuoFu] = BranchChen.Add(month)
	p[YouBi] = BranchXu.Add(-month)
	p[WenChang] = BranchXu.Add(-hour)
	p[WenQu] = BranchChen.Add(hour)

	noble := stemEntry("nobility table", nobleTable[:], stem)
	p[TianKui], p[TianYue] = noble[0], noble[1]

	luCun := stemEntry("lu cun table", luCunTable[:], stem)
	p[LuCun] = luCun
	p[QingYang] = luCun.Add(1)
	p[TuoLuo] = luCun.Add(-1)

	p[TianMa] = triadEntry("sky horse table", tianMaTable, year)
	p[HuoXing] = triadEntry("fire star table", huoXingStarts, year).Add(hour)
	p[LingXing] = triadEntry("bell star table", lingXingStarts, year).Add(hour)

	p[DiKong] = BranchHai.Add(-hour)
	p[DiJie] = BranchHai.Add(hour)

	p[HongLuan] = BranchMao.Add(-int(year))
	p[TianXi] = p[HongLuan].Add(6)
	return p
}

// PlaceStars returns a copy of the ring with every star placed and rated.
// Stars within a palace keep placement order, main stars first.
func PlaceStars(ring Ring, purple Branch, facts BirthFacts) (out Ring, err error) {
	defer recoverLookup(&err)
	if !purple.Valid() {
		return Ring{}, fmt.Errorf("%w: purple star branch %d", ErrInvalidSymbol, int(purple))
	}
	if err := facts.Validate(); err != nil {
		return Ring{}, err
	}
	placements := PlaceAll(purple, facts)
	out = ring.clone()
	for i := 0; i < starCount; i++ {
		name := StarName(i)
		b := placements[name]
		palace := out.At(b)
		palace.Stars = append(palace.Stars, newStar(name, b))
	}
	return out, nil
}
