// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/heringerp/panacus/hist"
	"github.com/heringerp/panacus/threshold"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newGrowthCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "growth <hist-table>",
		Short: "Calculate growth curves from coverage histograms",
		Long: `Calculate growth curves from coverage histograms.

The input is a histogram table as written by panacus (or a single histogram
in "hist<TAB>count" short form). One growth curve is computed per histogram
and per coverage/quorum pair; single-element lists are broadcast.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrowth(cmd, v, args)
		},
	}
	cmd.Flags().StringP("coverage", "l", "1", "comma-separated list of absolute coverage thresholds")
	cmd.Flags().StringP("quorum", "q", "0", "comma-separated list of relative quorum thresholds")
	cmd.Flags().IntP("threads", "t", 0, "number of parallel growth computations (0: unbounded)")
	cmd.Flags().BoolP("hist", "a", false, "also report the input histograms")
	mustBindFlags(v, cmd.Flags())

	return cmd
}

func runGrowth(cmd *cobra.Command, v *viper.Viper, args []string) error {
	pairs, err := threshold.ParsePairs(v.GetString("quorum"), v.GetString("coverage"))
	if err != nil {
		return err
	}
	threads := v.GetInt("threads")
	if threads < 0 {
		return fmt.Errorf("threads %d must be >= 0", threads)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	hists, _, err := hist.ParseHists(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	log.Infof("cli: %d histograms, %d threshold pairs", len(hists), len(pairs))

	var cols []hist.Column
	if v.GetBool("hist") {
		for _, h := range hists {
			cols = append(cols, hist.HistColumn(h))
		}
	}
	for _, h := range hists {
		curves, err := h.CalcAllGrowths(cmd.Context(), pairs, true, threads)
		if err != nil {
			return err
		}
		for i, c := range curves {
			cols = append(cols, hist.Column{
				Kind:     "growth",
				Count:    h.Count,
				Coverage: pairs[i].Coverage.String(),
				Quorum:   pairs[i].Quorum.String(),
				Values:   c,
			})
		}
	}
	comment := strings.TrimSpace(cmd.CommandPath() + " " + strings.Join(args, " "))

	return hist.WriteTable(cmd.OutOrStdout(), []string{comment}, cols)
}
