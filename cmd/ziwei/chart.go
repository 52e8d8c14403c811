package main

import (
	"github.com/spf13/cobra"
)

func newChartCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Compute the full natal chart",
		Example: `  ziwei chart --year 1990 --month 12 --day 7 --hour 寅 --year-stem 庚 --year-branch 午
  ziwei chart --facts me.yaml --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chart, format, err := c.chart(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format != formatText {
				return writeStructured(out, format, chart)
			}
			t := newTextWriter(out)
			t.summary(chart)
			return t.palaces(chart.Palaces[:])
		},
	}
}
