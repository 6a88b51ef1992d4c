package cli

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/happyhackingspace/nerprobe/corpus"
	"github.com/happyhackingspace/nerprobe/fields"
	"github.com/spf13/cobra"
)

func (c *CLI) newFieldsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "fields <corpus>",
		Short: "Show each token's features folded into named fields",
		Args:  cobra.ExactArgs(1),
		Example: `  nerprobe fields data/testb.snlpl.all.crfsuite --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := corpus.LoadFile(args[0])
			if err != nil {
				return err
			}
			slog.Debug("Corpus loaded", "sentences", len(docs), "tokens", docs.NumTokens())

			out := cmd.OutOrStdout()
			n := 0
			for _, sent := range docs {
				for _, tok := range sent {
					if limit > 0 && n >= limit {
						return nil
					}
					n++
					if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", tok.Label, tok.Lemma, formatFields(fields.ToFieldFeatures(tok.Features))); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of tokens to print (0: all)")
	return cmd
}

func formatFields(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + m[k]
	}
	return strings.Join(parts, "\t")
}
