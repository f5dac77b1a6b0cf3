package cmd

import (
	"fmt"

	"github.com/pthm/bandlint/internal/collab"
	"github.com/pthm/bandlint/internal/config"
	"github.com/pthm/bandlint/internal/parser"
	"github.com/pthm/bandlint/internal/reporter"
	"github.com/pthm/bandlint/internal/scoring"
	"github.com/spf13/cobra"
)

var reportDeep bool

var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Generate a detailed report for one essay",
	Long: `Generate a comprehensive report for a single essay.

This includes:
  - Band scores for each criterion
  - Counts, average sentence and word length
  - Vocabulary metrics
  - A per-sentence table of structural and voice flags
  - Feedback and strengths

Examples:
  bandlint report essay.md
  bandlint report --format json essay.txt > report.json`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runReport,
	SilenceUsage: true,
}

func init() {
	reportCmd.Flags().BoolVar(&reportDeep, "deep", false, "Add an AI second opinion")
	RootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	path := parser.StdinPath
	if len(args) > 0 {
		path = args[0]
	}

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	defaultTask, err := scoring.ParseTask(taskName)
	if err != nil {
		return err
	}

	eng, err := loadEngine(cfg)
	if err != nil {
		return err
	}

	in, err := readInput(path, false)
	if err != nil {
		return err
	}
	task, err := submissionTask(in.sub, defaultTask)
	if err != nil {
		return err
	}

	u := GetUI()
	if verbose {
		fmt.Printf("Lexicon: %s\n", eng.Lexicon().Name)
		fmt.Printf("Format:  %s\n\n", in.sub.FileType)
	}

	eval := reporter.Evaluation{
		Path:   in.sub.Path,
		Result: eng.Evaluate(in.sub.Essay, task),
	}

	if reportDeep {
		judge := newJudge(cfg)
		if judge == nil {
			warn(u, "no AI backend configured; set %s or %s=%s", config.EnvAPIKey, config.EnvJudge, config.JudgeClaudeCode)
		}
		spinner := u.StartSpinner("Requesting AI second opinion...", path == parser.StdinPath)
		eval.Opinion = collab.SecondOpinion(cmd.Context(), judge, in.sub.Essay, task)
		spinner.Stop()
	}

	return newReporter(u, true).Report([]reporter.Evaluation{eval})
}
