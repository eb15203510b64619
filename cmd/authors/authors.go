package authors

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tphakala/authorid/internal/conf"
	"github.com/tphakala/authorid/internal/corpus"
)

// Command creates a new cobra.Command to list the authors of a corpus.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authors",
		Short: "List the authors found in the corpus",
		Long:  "Loads the corpus directory and prints every author with the number of texts it contributes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := corpus.FromSettings(&settings.Corpus)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "AUTHOR\tTEXTS")
			for _, author := range c.Authors() {
				fmt.Fprintf(tw, "%s\t%d\n", author, len(c[author]))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().String("corpus", "data", "Corpus directory with one sub-directory per author")
	cmd.Flags().Bool("clean", false, "Strip notes and line numbers before splitting")

	return cmd
}
