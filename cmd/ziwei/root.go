package main

import (
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/spf13/cobra"
)

// cli holds the flag values shared by every subcommand.
type cli struct {
	facts  factsInput
	output string
	engine ziwei.Service
}

func newRootCmd() *cobra.Command {
	c := &cli{engine: ziwei.NewDefaultService()}

	root := &cobra.Command{
		Use:           "ziwei",
		Short:         "Compute Zi Wei Dou Shu natal charts",
		Long:          "ziwei computes a Zi Wei Dou Shu natal chart from lunar birth facts and reports palace relations and classical patterns.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.IntVar(&c.facts.year, "year", 0, "lunar year, e.g. 1990")
	flags.IntVar(&c.facts.month, "month", 0, "lunar month (1-12)")
	flags.IntVar(&c.facts.day, "day", 0, "lunar day (1-30)")
	flags.StringVar(&c.facts.hour, "hour", "", "birth hour branch, e.g. 寅 or yin")
	flags.StringVar(&c.facts.yearStem, "year-stem", "", "year stem, e.g. 庚 or geng")
	flags.StringVar(&c.facts.yearBranch, "year-branch", "", "year branch, e.g. 午 or wu")
	flags.StringVar(&c.facts.path, "facts", "", "YAML file with the birth facts (replaces the individual fact flags)")
	flags.StringVarP(&c.output, "output", "o", string(formatText), "output format: text, json or yaml")

	root.AddCommand(
		newChartCmd(c),
		newRelationsCmd(c),
		newPatternsCmd(c),
	)
	return root
}

// chart resolves the birth facts and output format for cmd and computes
// the chart.
func (c *cli) chart(cmd *cobra.Command) (*ziwei.Chart, outputFormat, error) {
	format, err := parseOutputFormat(c.output)
	if err != nil {
		return nil, "", err
	}
	facts, err := c.facts.resolve(cmd)
	if err != nil {
		return nil, "", err
	}
	chart, err := c.engine.ComputeChart(facts)
	if err != nil {
		return nil, "", err
	}
	return chart, format, nil
}
