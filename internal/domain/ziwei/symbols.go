package ziwei

import (
	"fmt"
	"strings"
)

// Stem is one of the ten heavenly stems, 甲 (0) through 癸 (9).
type Stem int

// Branch is one of the twelve earthly branches, 子 (0) through 亥 (11).
type Branch int

const (
	StemCount   = 10
	BranchCount = 12
)

// Heavenly stems.
const (
	StemJia Stem = iota
	StemYi
	StemBing
	StemDing
	StemWu
	StemJi
	StemGeng
	StemXin
	StemRen
	StemGui
)

// Earthly branches.
const (
	BranchZi Branch = iota
	BranchChou
	BranchYin
	BranchMao
	BranchChen
	BranchSi
	BranchWu
	BranchWei
	BranchShen
	BranchYou
	BranchXu
	BranchHai
)

var (
	stemSymbols   = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	stemPinyin    = [StemCount]string{"jia", "yi", "bing", "ding", "wu", "ji", "geng", "xin", "ren", "gui"}
	branchSymbols = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	branchPinyin  = [BranchCount]string{"zi", "chou", "yin", "mao", "chen", "si", "wu", "wei", "shen", "you", "xu", "hai"}
)

// Offset returns (base + n) mod modulus using Euclidean modulo, so the
// result is always in [0, modulus) even for negative n.
func Offset(base, n, modulus int) int {
	r := (base + n) % modulus
	if r < 0 {
		r += modulus
	}
	return r
}

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool { return s >= 0 && s < StemCount }

// Add walks n steps along the stem cycle.
func (s Stem) Add(n int) Stem { return Stem(Offset(int(s), n, StemCount)) }

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemSymbols[s]
}

// MarshalText encodes the stem as its Chinese symbol.
func (s Stem) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: stem %d", ErrInvalidSymbol, int(s))
	}
	return []byte(stemSymbols[s]), nil
}

// UnmarshalText accepts the Chinese symbol or the pinyin name.
func (s *Stem) UnmarshalText(text []byte) error {
	v, err := ParseStem(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool { return b >= 0 && b < BranchCount }

// Add walks n steps along the branch cycle; negative n walks backwards.
func (b Branch) Add(n int) Branch { return Branch(Offset(int(b), n, BranchCount)) }

// Triad returns the index of the branch's trine group. Branches four
// apart share a group: 申子辰, 巳酉丑, 寅午戌, 亥卯未.
func (b Branch) Triad() int { return int(b) % 4 }

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchSymbols[b]
}

// MarshalText encodes the branch as its Chinese symbol.
func (b Branch) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: branch %d", ErrInvalidSymbol, int(b))
	}
	return []byte(branchSymbols[b]), nil
}

// UnmarshalText accepts the Chinese symbol or the pinyin name.
func (b *Branch) UnmarshalText(text []byte) error {
	v, err := ParseBranch(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseStem resolves a stem from its Chinese symbol or pinyin name.
func ParseStem(symbol string) (Stem, error) {
	key := strings.ToLower(strings.TrimSpace(symbol))
	for i := range stemSymbols {
		if key == stemSymbols[i] || key == stemPinyin[i] {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("%w: stem %q", ErrInvalidSymbol, symbol)
}

// ParseBranch resolves a branch from its Chinese symbol or pinyin name.
func ParseBranch(symbol string) (Branch, error) {
	key := strings.ToLower(strings.TrimSpace(symbol))
	for i := range branchSymbols {
		if key == branchSymbols[i] || key == branchPinyin[i] {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("%w: branch %q", ErrInvalidSymbol, symbol)
}

// StemBranch is a sexagenary stem-branch pair such as 庚午.
type StemBranch struct {
	Stem   Stem   `json:"stem" yaml:"stem"`
	Branch Branch `json:"branch" yaml:"branch"`
}

// ParseStemBranch parses a two-symbol pair such as "庚午".
func ParseStemBranch(pair string) (StemBranch, error) {
	runes := []rune(strings.TrimSpace(pair))
	if len(runes) != 2 {
		return StemBranch{}, fmt.Errorf("%w: stem-branch %q", ErrInvalidSymbol, pair)
	}
	stem, err := ParseStem(string(runes[0]))
	if err != nil {
		return StemBranch{}, err
	}
	branch, err := ParseBranch(string(runes[1]))
	if err != nil {
		return StemBranch{}, err
	}
	return StemBranch{Stem: stem, Branch: branch}, nil
}

// Valid reports whether both halves of the pair are in range.
func (sb StemBranch) Valid() bool { return sb.Stem.Valid() && sb.Branch.Valid() }

func (sb StemBranch) String() string { return sb.Stem.String() + sb.Branch.String() }
