package main

import (
	"fmt"

	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/spf13/cobra"
)

// relationsOutput is the structured form of the relations command.
type relationsOutput struct {
	Palace   ziwei.PalaceName     `json:"palace" yaml:"palace"`
	Relation ziwei.PalaceRelation `json:"relation" yaml:"relation"`
	Palaces  []ziwei.Palace       `json:"palaces" yaml:"palaces"`
}

func newRelationsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "relations <palace>",
		Short: "Show the opposite and trine palaces of a palace",
		Long: "relations resolves the palaces related to one palace. The palace may be given " +
			"as an ordinal (0-11), an English name such as Career, or a Chinese label such as 官禄.",
		Example: `  ziwei relations life --facts me.yaml
  ziwei relations 官禄 --facts me.yaml --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			palace, err := ziwei.ParsePalace(args[0])
			if err != nil {
				return err
			}
			chart, format, err := c.chart(cmd)
			if err != nil {
				return err
			}
			rel, err := c.engine.RelationsOf(chart, palace)
			if err != nil {
				return err
			}

			set := rel.Set()
			palaces := make([]ziwei.Palace, 0, len(set))
			for _, ordinal := range set {
				p, err := chart.Palace(ziwei.PalaceName(ordinal))
				if err != nil {
					return err
				}
				palaces = append(palaces, p)
			}

			out := cmd.OutOrStdout()
			if format != formatText {
				return writeStructured(out, format, relationsOutput{Palace: palace, Relation: rel, Palaces: palaces})
			}
			t := newTextWriter(out)
			target := chart.Palaces[rel.Target]
			t.title("%s %s (%s)", palace.Chinese(), palace, target.Branch)
			fmt.Fprintf(out, "Opposite %s  Trine %s %s\n",
				chart.Palaces[rel.Opposite].Name.Chinese(),
				chart.Palaces[rel.Trine[0]].Name.Chinese(),
				chart.Palaces[rel.Trine[1]].Name.Chinese())
			return t.palaces(palaces)
		},
	}
}
