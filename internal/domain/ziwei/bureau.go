package ziwei

import "fmt"

// Element is one of the five phases.
type Element int

const (
	Water Element = iota
	Wood
	Metal
	Earth
	Fire
)

var elementSymbols = [...]string{"水", "木", "金", "土", "火"}

// bureauNumbers maps each element to its bureau number.
var bureauNumbers = [...]int{Water: 2, Wood: 3, Metal: 4, Earth: 5, Fire: 6}

var bureauNumerals = map[int]string{2: "二", 3: "三", 4: "四", 5: "五", 6: "六"}

func (e Element) String() string {
	if e < Water || e > Fire {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementSymbols[e]
}

// MarshalText encodes the element as its Chinese symbol.
func (e Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText decodes a Chinese element symbol.
func (e *Element) UnmarshalText(text []byte) error {
	for i, sym := range elementSymbols {
		if string(text) == sym {
			*e = Element(i)
			return nil
		}
	}
	return fmt.Errorf("%w: element %q", ErrInvalidSymbol, string(text))
}

// Bureau is the five-element bureau of a chart. Its number (2..6) drives
// the Purple Star placement.
type Bureau struct {
	Element Element `json:"element" yaml:"element"`
	Nayin   string  `json:"nayin" yaml:"nayin"`
	Number  int     `json:"number" yaml:"number"`
}

// Name returns the conventional bureau name, e.g. 土五局.
func (b Bureau) Name() string {
	return b.Element.String() + bureauNumerals[b.Number] + "局"
}

type nayin struct {
	name    string
	element Element
}

// nayinTable is indexed by [stem/2][branch/2]. Each sexagenary pair lands
// in the cell shared with its partner (甲子 and 乙丑 are both 海中金), which
// also makes the table total over parity-mismatched pairs.
var nayinTable = [5][6]nayin{
	// 甲乙
	{{"海中金", Metal}, {"大溪水", Water}, {"覆灯火", Fire}, {"沙中金", Metal}, {"泉中水", Water}, {"山头火", Fire}},
	// 丙丁
	{{"涧下水", Water}, {"炉中火", Fire}, {"沙中土", Earth}, {"天河水", Water}, {"山下火", Fire}, {"屋上土", Earth}},
	// 戊己
	{{"霹雳火", Fire}, {"城头土", Earth}, {"大林木", Wood}, {"天上火", Fire}, {"大驿土", Earth}, {"平地木", Wood}},
	// 庚辛
	{{"壁上土", Earth}, {"松柏木", Wood}, {"白蜡金", Metal}, {"路旁土", Earth}, {"石榴木", Wood}, {"钗钏金", Metal}},
	// 壬癸
	{{"桑柘木", Wood}, {"金箔金", Metal}, {"长流水", Water}, {"杨柳木", Wood}, {"剑锋金", Metal}, {"大海水", Water}},
}

// ResolveBureau derives the five-element bureau from the stem-branch pair
// of the Life Palace.
func ResolveBureau(sb StemBranch) (Bureau, error) {
	if !sb.Valid() {
		return Bureau{}, fmt.Errorf("%w: %d/%d", ErrInvalidSymbol, int(sb.Stem), int(sb.Branch))
	}
	n := nayinTable[sb.Stem/2][sb.Branch/2]
	return Bureau{Element: n.element, Nayin: n.name, Number: bureauNumbers[n.element]}, nil
}
