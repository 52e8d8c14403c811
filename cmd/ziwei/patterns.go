package main

import (
	"fmt"
	"strings"

	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/spf13/cobra"
)

// patternsOutput is the structured form of the patterns command.
type patternsOutput struct {
	LifeBranch ziwei.Branch         `json:"life_branch" yaml:"life_branch"`
	Patterns   []ziwei.PatternMatch `json:"patterns" yaml:"patterns"`
}

func newPatternsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "patterns",
		Short:   "List the classical patterns the chart satisfies",
		Example: `  ziwei patterns --facts me.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chart, format, err := c.chart(cmd)
			if err != nil {
				return err
			}
			matches, err := c.engine.AnalyzePatterns(chart)
			if err != nil {
				return err
			}
			if matches == nil {
				matches = []ziwei.PatternMatch{}
			}

			out := cmd.OutOrStdout()
			if format != formatText {
				return writeStructured(out, format, patternsOutput{LifeBranch: chart.LifeBranch, Patterns: matches})
			}
			t := newTextWriter(out)
			t.title("Patterns for Life Palace %s", chart.LifeBranch)
			if len(matches) == 0 {
				fmt.Fprintln(out, "none")
				return nil
			}
			for _, m := range matches {
				kind := "inauspicious"
				if m.Auspicious {
					kind = "auspicious"
				}
				palaces := make([]string, len(m.Palaces))
				for i, p := range m.Palaces {
					palaces[i] = p.Chinese()
				}
				stars := make([]string, len(m.Stars))
				for i, s := range m.Stars {
					stars[i] = s.String()
				}
				fmt.Fprintf(out, "%s %s [%s] palaces: %s stars: %s\n",
					m.ID, m.Name, kind, strings.Join(palaces, " "), strings.Join(stars, " "))
			}
			return nil
		},
	}
}
