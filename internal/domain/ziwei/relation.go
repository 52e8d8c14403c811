package ziwei

import "fmt"

// PalaceRelation lists the palaces related to a target palace by
// ordinal. It is computed on demand and never stored on a Chart.
type PalaceRelation struct {
	Target   int    `json:"target" yaml:"target"`
	Opposite int    `json:"opposite" yaml:"opposite"`
	Trine    [2]int `json:"trine" yaml:"trine"`
}

// Set returns the target, its opposite and its trine partners.
func (r PalaceRelation) Set() []int {
	set := []int{r.Target}
	for _, o := range []int{r.Opposite, r.Trine[0], r.Trine[1]} {
		seen := false
		for _, s := range set {
			if s == o {
				seen = true
				break
			}
		}
		if !seen {
			set = append(set, o)
		}
	}
	return set
}

// Contains reports whether ordinal belongs to the relation set.
func (r PalaceRelation) Contains(ordinal int) bool {
	for _, o := range r.Set() {
		if o == ordinal {
			return true
		}
	}
	return false
}

// relationOnRing resolves relations from branch positions alone.
func relationOnRing(ring *Ring, ordinal int) PalaceRelation {
	target := ring[ordinal].Branch
	rel := PalaceRelation{
		Target:   ordinal,
		Opposite: ring.OrdinalOf(target.Add(6)),
	}
	n := 0
	for i := range ring {
		if i != ordinal && ring[i].Branch.Triad() == target.Triad() {
			rel.Trine[n] = i
			n++
		}
	}
	return rel
}

// RelationsOf returns the opposite and trine palaces of the palace at
// ordinal.
func RelationsOf(chart *Chart, ordinal int) (PalaceRelation, error) {
	if chart == nil {
		return PalaceRelation{}, fmt.Errorf("%w: nil chart", ErrInvalidInput)
	}
	if ordinal < 0 || ordinal >= PalaceCount {
		return PalaceRelation{}, fmt.Errorf("%w: palace ordinal %d", ErrInvalidInput, ordinal)
	}
	return relationOnRing(&chart.Palaces, ordinal), nil
}

// RelationsOfName is RelationsOf addressed by palace role.
func RelationsOfName(chart *Chart, name PalaceName) (PalaceRelation, error) {
	if !name.Valid() {
		return PalaceRelation{}, fmt.Errorf("%w: palace %d", ErrInvalidInput, int(name))
	}
	return RelationsOf(chart, int(name))
}
