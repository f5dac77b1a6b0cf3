package cmd

import (
	"fmt"
	"os"

	"github.com/pthm/bandlint/internal/collab"
	"github.com/pthm/bandlint/internal/config"
	"github.com/pthm/bandlint/internal/engine"
	"github.com/pthm/bandlint/internal/lexicon"
	"github.com/pthm/bandlint/internal/parser"
	"github.com/pthm/bandlint/internal/reporter"
	"github.com/pthm/bandlint/internal/scoring"
	"github.com/pthm/bandlint/internal/ui"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose     bool
	format      string
	taskName    string
	lexiconName string
)

var RootCmd = &cobra.Command{
	Use:   "bandlint",
	Short: "Band scoring and feedback for IELTS-style essays",
	Long: `bandlint analyzes written essays and scores them on the four
IELTS writing criteria: task achievement, coherence and cohesion,
lexical resource, and grammatical range.

Scoring is deterministic. It segments the text into sentences and
paragraphs, flags fragments, run-ons and passive constructions, measures
vocabulary range, and turns these signals into quarter-band scores with
ordered feedback. An optional AI second opinion can be requested with
--deep.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return ui.ValidateFormat(format)
	},
}

var globalUI *ui.UI

// GetUI returns the UI for this invocation, created on first use so that
// the --format flag has been parsed
func GetUI() *ui.UI {
	if globalUI == nil {
		globalUI = ui.New(os.Stdout, os.Stderr, format)
	}
	return globalUI
}

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json)")
	RootCmd.PersistentFlags().StringVarP(&taskName, "task", "t", scoring.Extended.String(), "Task category when a submission does not declare one (short, extended)")
	RootCmd.PersistentFlags().StringVarP(&lexiconName, "lexicon", "l", "", "Builtin lexicon name or path to a lexicon YAML file (default $BANDLINT_LEXICON or \"default\")")
}

// loadLexicon resolves --lexicon, falling back to the configured lexicon
func loadLexicon(cfg *config.Config) (*lexicon.Lexicon, error) {
	name := lexiconName
	if name == "" {
		name = cfg.Lexicon
	}
	lex, err := lexicon.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	return lex, nil
}

// loadEngine builds an engine over the resolved lexicon
func loadEngine(cfg *config.Config) (*engine.Engine, error) {
	lex, err := loadLexicon(cfg)
	if err != nil {
		return nil, err
	}
	return engine.New(lex), nil
}

// submissionTask returns the task a submission declares, or def
func submissionTask(sub *parser.Submission, def scoring.Task) (scoring.Task, error) {
	if sub.Task == "" {
		return def, nil
	}
	task, err := scoring.ParseTask(sub.Task)
	if err != nil {
		return def, fmt.Errorf("%s: %w", sub.Path, err)
	}
	return task, nil
}

// newJudge returns the configured second-opinion backend, or nil when none
// is usable
func newJudge(cfg *config.Config) collab.Judge {
	switch cfg.Judge {
	case config.JudgeClaudeCode:
		return collab.NewClaudeCodeJudge("")
	default:
		if c := collab.NewAnthropicClient(cfg.APIKey, cfg.Model); c != nil {
			return c
		}
		return nil
	}
}

// newExtractor returns the image text extractor, or nil without an API key
func newExtractor(cfg *config.Config) collab.TextExtractor {
	if c := collab.NewAnthropicClient(cfg.APIKey, cfg.Model); c != nil {
		return c
	}
	return nil
}

// newReporter picks the reporter for --format
func newReporter(u *ui.UI, detailed bool) reporter.Reporter {
	if u.IsJSON() {
		return reporter.NewJSONReporter(u.Writer)
	}
	if detailed {
		return reporter.NewDetailedReporter(u.Writer, u.Styles)
	}
	return reporter.NewTerminalReporter(u.Writer, u.Styles)
}

// warn prints a styled warning to stderr
func warn(u *ui.UI, msg string, args ...any) {
	fmt.Fprintln(u.ErrWriter, u.Styles.Warning.Render(
		fmt.Sprintf("%s Warning: %s", u.Styles.IconWarning, fmt.Sprintf(msg, args...)),
	))
}
