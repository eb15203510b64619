package clean

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tphakala/authorid/internal/textclean"
)

// Command creates a new clean command that strips notes, footnotes and
// line numbers from a text file.
func Command() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clean input [output]",
		Short: "Remove editorial notes and line numbers from a text",
		Long:  "Writes the cleaned text to output, or to standard output when no output file is given.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := textclean.DefaultRules()
			if all {
				rules = textclean.AllRules()
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			cleaned := textclean.New(rules).Clean(string(data))

			if len(args) == 1 {
				_, err = io.WriteString(cmd.OutOrStdout(), cleaned)
				return err
			}
			if err := os.WriteFile(args[1], []byte(cleaned), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[1], err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also remove footnote markers, all numbers and roman stanza markers")

	return cmd
}
