package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var factFlags = []string{"year", "month", "day", "hour", "year-stem", "year-branch"}

// errFactsConflict is returned when --facts is combined with individual
// fact flags.
var errFactsConflict = errors.New("--facts cannot be combined with individual fact flags")

type factsInput struct {
	path       string
	year       int
	month      int
	day        int
	hour       string
	yearStem   string
	yearBranch string
}

// factsFile is the YAML layout accepted by --facts. Symbols may be given
// in Chinese or pinyin.
//
//	lunar_year: 1990
//	lunar_month: 12
//	lunar_day: 7
//	hour: 寅
//	year: 庚午
type factsFile struct {
	LunarYear  int    `yaml:"lunar_year"`
	LunarMonth int    `yaml:"lunar_month"`
	LunarDay   int    `yaml:"lunar_day"`
	Hour       string `yaml:"hour"`
	Year       string `yaml:"year"`
}

func (in *factsInput) resolve(cmd *cobra.Command) (ziwei.BirthFacts, error) {
	flags := cmd.Flags()
	if in.path != "" {
		for _, name := range factFlags {
			if flags.Changed(name) {
				return ziwei.BirthFacts{}, fmt.Errorf("%w: --%s", errFactsConflict, name)
			}
		}
		return loadFactsFile(in.path)
	}

	for _, name := range factFlags {
		if !flags.Changed(name) {
			return ziwei.BirthFacts{}, fmt.Errorf("missing --%s (or pass --facts)", name)
		}
	}
	stem, err := ziwei.ParseStem(in.yearStem)
	if err != nil {
		return ziwei.BirthFacts{}, err
	}
	branch, err := ziwei.ParseBranch(in.yearBranch)
	if err != nil {
		return ziwei.BirthFacts{}, err
	}
	return buildFacts(in.year, in.month, in.day, in.hour, ziwei.StemBranch{Stem: stem, Branch: branch})
}

func loadFactsFile(path string) (ziwei.BirthFacts, error) {
	f, err := os.Open(path)
	if err != nil {
		return ziwei.BirthFacts{}, fmt.Errorf("failed to open facts file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var ff factsFile
	if err := dec.Decode(&ff); err != nil {
		return ziwei.BirthFacts{}, fmt.Errorf("failed to parse facts file %s: %w", path, err)
	}

	year, err := ziwei.ParseStemBranch(ff.Year)
	if err != nil {
		return ziwei.BirthFacts{}, err
	}
	return buildFacts(ff.LunarYear, ff.LunarMonth, ff.LunarDay, ff.Hour, year)
}

func buildFacts(year, month, day int, hour string, pillar ziwei.StemBranch) (ziwei.BirthFacts, error) {
	h, err := ziwei.ParseBranch(hour)
	if err != nil {
		return ziwei.BirthFacts{}, err
	}
	facts := ziwei.BirthFacts{
		LunarYear:  year,
		LunarMonth: month,
		LunarDay:   day,
		Hour:       h,
		Year:       pillar,
	}
	if err := facts.Validate(); err != nil {
		return ziwei.BirthFacts{}, err
	}
	return facts, nil
}
