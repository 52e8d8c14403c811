package ziwei

import "fmt"

// Role is one of the four transformations.
type Role int

const (
	RoleLu   Role = iota // 禄
	RoleQuan             // 权
	RoleKe               // 科
	RoleJi               // 忌
)

var roleSymbols = [...]string{"禄", "权", "科", "忌"}

func (r Role) String() string {
	if r < RoleLu || r > RoleJi {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleSymbols[r]
}

// MarshalText encodes the role as its Chinese symbol.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a Chinese role symbol.
func (r *Role) UnmarshalText(text []byte) error {
	for i, sym := range roleSymbols {
		if string(text) == sym {
			*r = Role(i)
			return nil
		}
	}
	return fmt.Errorf("%w: transformation role %q", ErrInvalidSymbol, string(text))
}

// TransformationTag marks a star in a palace with a transformation role.
type TransformationTag struct {
	Star StarName `json:"star" yaml:"star"`
	Role Role     `json:"role" yaml:"role"`
}

func (t TransformationTag) String() string { return t.Star.String() + "化" + t.Role.String() }

// transformTable lists the 禄 权 科 忌 targets for each year stem.
var transformTable = [StemCount][4]StarName{
	{LianZhen, PoJun, WuQu, TaiYang},       // 甲
	{TianJi, TianLiang, ZiWei, TaiYin},     // 乙
	{TianTong, TianJi, WenChang, LianZhen}, // 丙
	{TaiYin, TianTong, TianJi, JuMen},      // 丁
	{TanLang, TaiYin, YouBi, TianJi},       // 戊
	{WuQu, TanLang, TianLiang, WenQu},      // 己
	{TaiYang, WuQu, TaiYin, TianTong},      // 庚
	{JuMen, TaiYang, WenQu, WenChang},      // 辛
	{TianLiang, ZiWei, ZuoFu, WuQu},        // 壬
	{PoJun, JuMen, TaiYin, TanLang},        // 癸
}

// TransformationTargets returns the four stars transformed by a year
// stem, indexed by Role.
func TransformationTargets(yearStem Stem) ([4]StarName, error) {
	if !yearStem.Valid() {
		return [4]StarName{}, fmt.Errorf("%w: year stem %d", ErrInvalidSymbol, int(yearStem))
	}
	return transformTable[yearStem], nil
}

// TagTransformations returns a copy of the ring where each palace holding
// a target star carries its tag. A target absent from the ring produces
// no tag.
func TagTransformations(ring Ring, yearStem Stem) (Ring, error) {
	targets, err := TransformationTargets(yearStem)
	if err != nil {
		return Ring{}, err
	}
	out := ring.clone()
	for role, star := range targets {
		for i := range out {
			if out[i].HasStar(star) {
				out[i].Transformations = append(out[i].Transformations,
					TransformationTag{Star: star, Role: Role(role)})
				break
			}
		}
	}
	return out, nil
}
