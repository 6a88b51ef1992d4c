package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/happyhackingspace/nerprobe"
	"github.com/spf13/cobra"
)

func (c *CLI) newSweepCommand() *cobra.Command {
	cfg := nerprobe.DefaultConfig()
	var classes []string
	var sizes []int
	var parallel int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one experiment per class and training size",
		Args:  cobra.NoArgs,
		Example: `  nerprobe sweep --classes PER,LOC,ORG --sizes 1,3,10,30
  nerprobe sweep --classes LOC --sizes 20 --parallel 8 --seed 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			total := len(classes) * len(sizes)
			slog.Info("Running sweep", "classes", classes, "sizes", sizes, "runs", total, "parallel", parallel)

			var progress func(*nerprobe.Result)
			if !c.silent {
				p := uiprogress.New()
				p.SetOut(os.Stderr)
				p.Start()
				defer p.Stop()
				bar := p.AddBar(total)
				bar.AppendCompleted()
				bar.PrependElapsed()
				progress = func(*nerprobe.Result) { bar.Incr() }
			}

			start := time.Now()
			results, err := nerprobe.Sweep(cmd.Context(), cfg, classes, sizes, parallel, progress)
			if err != nil {
				return err
			}
			slog.Debug("Sweep completed", "runs", len(results), "duration", time.Since(start))

			output, _ := json.MarshalIndent(results, "", "  ")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return err
		},
	}

	cmd.Flags().StringSliceVar(&classes, "classes", []string{"PER", "LOC", "ORG", "MISC"}, "Entity classes")
	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{1, 3, 10, 30}, "Training sizes in sentences")
	cmd.Flags().IntVar(&parallel, "parallel", 4, "Maximum concurrent runs")
	experimentFlags(cmd, &cfg)
	return cmd
}
