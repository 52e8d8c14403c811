package ziwei

import (
	"fmt"
	"strings"
)

// StarName identifies a star. Main stars come first, in placement order.
type StarName int

// Main stars: the Purple Star group then the Court-Treasury group.
const (
	ZiWei StarName = iota
	TianJi
	TaiYang
	WuQu
	TianTong
	LianZhen
	TianFu
	TaiYin
	TanLang
	JuMen
	TianXiang
	TianLiang
	QiSha
	PoJun
)

// Auxiliary stars.
const (
	ZuoFu StarName = iota + PoJun + 1
	YouBi
	WenChang
	WenQu
	TianKui
	TianYue
	LuCun
	QingYang
	TuoLuo
	TianMa
	HuoXing
	LingXing
	DiKong
	DiJie
	HongLuan
	TianXi
)

const (
	mainStarCount = int(PoJun) + 1
	starCount     = int(TianXi) + 1
)

var starNames = [starCount]struct {
	symbol string
	pinyin string
}{
	{"紫微", "ziwei"}, {"天机", "tianji"}, {"太阳", "taiyang"}, {"武曲", "wuqu"},
	{"天同", "tiantong"}, {"廉贞", "lianzhen"}, {"天府", "tianfu"}, {"太阴", "taiyin"},
	{"贪狼", "tanlang"}, {"巨门", "jumen"}, {"天相", "tianxiang"}, {"天梁", "tianliang"},
	{"七杀", "qisha"}, {"破军", "pojun"},
	{"左辅", "zuofu"}, {"右弼", "youbi"}, {"文昌", "wenchang"}, {"文曲", "wenqu"},
	{"天魁", "tiankui"}, {"天钺", "tianyue"}, {"禄存", "lucun"}, {"擎羊", "qingyang"},
	{"陀罗", "tuoluo"}, {"天马", "tianma"}, {"火星", "huoxing"}, {"铃星", "lingxing"},
	{"地空", "dikong"}, {"地劫", "dijie"}, {"红鸾", "hongluan"}, {"天喜", "tianxi"},
}

// Valid reports whether n names a known star.
func (n StarName) Valid() bool { return n >= 0 && int(n) < starCount }

// IsMain reports whether n is one of the fourteen main stars.
func (n StarName) IsMain() bool { return n >= 0 && int(n) < mainStarCount }

func (n StarName) String() string {
	if !n.Valid() {
		return fmt.Sprintf("StarName(%d)", int(n))
	}
	return starNames[n].symbol
}

// MarshalText encodes the star as its Chinese name.
func (n StarName) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: star %d", ErrLookupMiss, int(n))
	}
	return []byte(starNames[n].symbol), nil
}

// UnmarshalText accepts the Chinese name or the pinyin identifier.
func (n *StarName) UnmarshalText(text []byte) error {
	v, err := ParseStar(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// ParseStar resolves a star from its Chinese name or pinyin identifier.
func ParseStar(s string) (StarName, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range starNames {
		if key == n.symbol || key == n.pinyin {
			return StarName(i), nil
		}
	}
	return 0, fmt.Errorf("%w: star %q", ErrInvalidSymbol, s)
}

// Category separates the fourteen main stars from auxiliary ones.
type Category string

const (
	CategoryMain      Category = "main"
	CategoryAuxiliary Category = "auxiliary"
)

// Brightness is the seven-level strength scale, strongest first.
type Brightness int

const (
	Temple  Brightness = iota // 庙
	Prosper                   // 旺
	Gain                      // 得
	Favor                     // 利
	Even                      // 平
	Idle                      // 闲
	Fall                      // 陷
)

var brightnessSymbols = [...]string{"庙", "旺", "得", "利", "平", "闲", "陷"}

func (b Brightness) String() string {
	if b < Temple || b > Fall {
		return fmt.Sprintf("Brightness(%d)", int(b))
	}
	return brightnessSymbols[b]
}

// AtLeast reports whether b is as strong as or stronger than min.
func (b Brightness) AtLeast(min Brightness) bool { return b <= min }

// MarshalText encodes the brightness as its Chinese symbol.
func (b Brightness) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText decodes a Chinese brightness symbol. 不 is read as 闲.
func (b *Brightness) UnmarshalText(text []byte) error {
	v, err := parseBrightness(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func parseBrightness(s string) (Brightness, error) {
	if s == "不" {
		return Idle, nil
	}
	for i, sym := range brightnessSymbols {
		if s == sym {
			return Brightness(i), nil
		}
	}
	return 0, fmt.Errorf("%w: brightness %q", ErrInvalidSymbol, s)
}

// Star is a placed star with its brightness on the palace's branch.
type Star struct {
	Name       StarName   `json:"name" yaml:"name"`
	Category   Category   `json:"category" yaml:"category"`
	Brightness Brightness `json:"brightness" yaml:"brightness"`
}

// Brightness rows list the twelve branches starting at 寅:
// 寅 卯 辰 巳 午 未 申 酉 戌 亥 子 丑.
var mainBrightnessRows = map[StarName]string{
	ZiWei:     "旺旺得旺庙庙旺旺得旺平庙",
	TianJi:    "得旺利平庙陷得旺利平庙陷",
	TaiYang:   "旺庙旺旺旺得得陷不陷陷不",
	WuQu:      "得利庙平旺庙得利庙平旺庙",
	TianTong:  "利平平庙陷不旺平平庙旺不",
	LianZhen:  "庙平利陷平利庙平利陷平利",
	TianFu:    "庙得庙得旺庙得旺庙得庙庙",
	TaiYin:    "旺陷陷陷不不利不旺庙庙庙",
	TanLang:   "平利庙陷旺庙平利庙陷旺庙",
	JuMen:     "庙庙陷旺旺不庙庙陷旺旺不",
	TianXiang: "庙陷得得庙得庙陷得得庙庙",
	TianLiang: "庙庙旺陷庙旺陷得旺陷庙旺",
	QiSha:     "庙旺庙平旺庙庙庙庙平旺庙",
	PoJun:     "得陷旺平庙旺得陷旺平庙旺",
}

// Cells a star can never occupy are filled with 平.
var auxBrightnessRows = map[StarName]string{
	WenChang: "陷利得庙陷利得庙陷利得庙",
	WenQu:    "平旺得庙陷旺得庙平旺得庙",
	QingYang: "平陷庙平陷庙平陷庙平陷庙",
	TuoLuo:   "陷平庙陷平庙陷平庙陷平庙",
	HuoXing:  "庙利陷得庙利陷得庙利陷得",
	LingXing: "庙利陷得庙利陷得庙利陷得",
}

var (
	mainBrightness = parseBrightnessRows(mainBrightnessRows)
	auxBrightness  = parseBrightnessRows(auxBrightnessRows)
)

// parseBrightnessRows turns the 寅-first rows into branch-indexed arrays.
// A malformed row is a table defect and panics at start-up.
func parseBrightnessRows(rows map[StarName]string) map[StarName][BranchCount]Brightness {
	out := make(map[StarName][BranchCount]Brightness, len(rows))
	for star, row := range rows {
		cells := []rune(row)
		if len(cells) != BranchCount {
			panic(fmt.Sprintf("ziwei: brightness row for %s has %d cells", star, len(cells)))
		}
		var levels [BranchCount]Brightness
		for i, c := range cells {
			level, err := parseBrightness(string(c))
			if err != nil {
				panic(fmt.Sprintf("ziwei: brightness row for %s: %v", star, err))
			}
			levels[BranchYin.Add(i)] = level
		}
		out[star] = levels
	}
	return out
}

// BrightnessOf returns the brightness of a star on a branch. Stars absent
// from both tables are 平.
func BrightnessOf(star StarName, b Branch) Brightness {
	if !b.Valid() {
		panic(missf("brightness table", b))
	}
	if row, ok := mainBrightness[star]; ok {
		return row[b]
	}
	if row, ok := auxBrightness[star]; ok {
		return row[b]
	}
	return Even
}

func newStar(name StarName, b Branch) Star {
	category := CategoryAuxiliary
	if name.IsMain() {
		category = CategoryMain
	}
	return Star{Name: name, Category: category, Brightness: BrightnessOf(name, b)}
}
