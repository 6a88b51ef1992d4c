package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/happyhackingspace/nerprobe/classifier"
	"github.com/happyhackingspace/nerprobe/crfsuite"
	"github.com/spf13/cobra"
)

func (c *CLI) newDumpCommand() *cobra.Command {
	var class string
	var top int

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Show the heaviest features of a CRFsuite model dump",
		Args:  cobra.ExactArgs(1),
		Example: `  crfsuite dump model.crfsuite > model.txt
  nerprobe dump model.txt --class LOC --top 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open dump: %w", err)
			}
			defer func() { _ = f.Close() }()

			d, err := crfsuite.ParseDump(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			slog.Debug("Dump parsed", "labels", d.Labels.Size(), "attributes", d.Attributes.Size(),
				"transitions", len(d.Transitions), "states", len(d.States))

			model := classifier.NewTokenClassifier(d.FeatureWeights(class))
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "labels: %s\n", strings.Join(d.Labels.Names(), " "))
			_, _ = fmt.Fprintf(out, "%s: %d features\n", class, model.Size())
			for _, wf := range model.Top(top) {
				if _, err := fmt.Fprintf(out, "%+.6f\t%s\n", wf.Weight, wf.Name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&class, "class", "PER", "Entity class to flatten against O")
	cmd.Flags().IntVar(&top, "top", 20, "Number of features to print")
	return cmd
}
