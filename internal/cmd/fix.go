package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pthm/bandlint/internal/config"
	"github.com/pthm/bandlint/internal/fixer"
	"github.com/pthm/bandlint/internal/parser"
	"github.com/pthm/bandlint/internal/rules"
	"github.com/spf13/cobra"
)

var dryRun bool

var fixCmd = &cobra.Command{
	Use:   "fix [files...]",
	Short: "Fix repeated words, lowercase sentence starts and missing spaces",
	Long: `Automatically correct the mechanical slips evaluate reports.

Only text and markdown submissions are rewritten. With "-" the essay is
read from standard input and the corrected text is written to standard
output.

Examples:
  bandlint fix essay.txt
  bandlint fix --dry-run essays/*.md
  cat essay.txt | bandlint fix - > fixed.txt`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         runFix,
	SilenceUsage: true,
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show fixes without applying them")
	RootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	lex, err := loadLexicon(config.FromEnv())
	if err != nil {
		return err
	}

	u := GetUI()
	f := fixer.New(fixer.Options{DryRun: dryRun}, u, rules.DefaultRegistry(lex))

	files, total := 0, 0
	for _, path := range args {
		if path == parser.StdinPath {
			content, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			fixed, _ := f.FixSubmission(path, string(content))
			if _, err := io.WriteString(u.Writer, fixed); err != nil {
				return err
			}
			continue
		}

		files++
		changes, err := f.FixFile(path)
		if err != nil {
			warn(u, "failed to fix %s: %v", path, err)
			continue
		}
		total += len(changes)
	}

	if files > 0 && total == 0 {
		fmt.Fprintln(u.Writer, u.Styles.Success.Render(
			fmt.Sprintf("%s No fixable issues found", u.Styles.IconSuccess),
		))
	}
	return nil
}
