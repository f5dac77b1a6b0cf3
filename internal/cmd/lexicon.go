package cmd

import (
	"fmt"

	"github.com/pthm/bandlint/internal/config"
	"github.com/pthm/bandlint/internal/lexicon"
	"github.com/spf13/cobra"
)

var listLexicons bool

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Print the active lexicon as YAML",
	Long: `Print the word lists and canned examples the scorer uses.

The output is a valid lexicon file: redirect it, edit the lists, and pass
the file back with --lexicon.

Examples:
  bandlint lexicon > my-lexicon.yaml
  bandlint lexicon --list
  bandlint evaluate --lexicon my-lexicon.yaml essay.txt`,
	Args:         cobra.NoArgs,
	RunE:         runLexicon,
	SilenceUsage: true,
}

func init() {
	lexiconCmd.Flags().BoolVar(&listLexicons, "list", false, "List builtin lexicon names")
	RootCmd.AddCommand(lexiconCmd)
}

func runLexicon(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if listLexicons {
		for _, name := range lexicon.Available() {
			if name == lexicon.DefaultName {
				fmt.Fprintf(out, "%s (default)\n", name)
				continue
			}
			fmt.Fprintln(out, name)
		}
		return nil
	}

	lex, err := loadLexicon(config.FromEnv())
	if err != nil {
		return err
	}

	data, err := lexicon.Marshal(lex)
	if err != nil {
		return fmt.Errorf("failed to render lexicon: %w", err)
	}
	_, err = out.Write(data)
	return err
}
