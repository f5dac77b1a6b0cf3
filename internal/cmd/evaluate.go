package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/pthm/bandlint/internal/collab"
	"github.com/pthm/bandlint/internal/config"
	"github.com/pthm/bandlint/internal/engine"
	"github.com/pthm/bandlint/internal/parser"
	"github.com/pthm/bandlint/internal/reporter"
	"github.com/pthm/bandlint/internal/scoring"
	"github.com/pthm/bandlint/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	deep        bool
	imageInput  bool
	concurrency int
)

var evaluateCmd = &cobra.Command{
	Use:     "evaluate [files...]",
	Aliases: []string{"eval"},
	Short:   "Score essays and print band scores with feedback",
	Long: `Evaluate one or more essays. With no files, or with "-", the essay
is read from standard input.

Submissions may be plain text, markdown, JSON ({"essay": ..., "taskType": ...})
or YAML (essay:, task:). A task declared by the submission overrides --task.

Examples:
  bandlint evaluate essay.txt
  bandlint evaluate --task short report.md
  bandlint evaluate --deep essays/*.txt
  bandlint evaluate --image scan.png
  cat essay.txt | bandlint evaluate --format json`,
	Args:         cobra.ArbitraryArgs,
	RunE:         runEvaluate,
	SilenceUsage: true,
}

func init() {
	evaluateCmd.Flags().BoolVar(&deep, "deep", false, "Add an AI second opinion (ANTHROPIC_API_KEY or BANDLINT_JUDGE=claude-code)")
	evaluateCmd.Flags().BoolVar(&imageInput, "image", false, "Treat inputs as images and extract the essay text first")
	evaluateCmd.Flags().IntVarP(&concurrency, "jobs", "j", runtime.NumCPU(), "Number of submissions evaluated at once")
	RootCmd.AddCommand(evaluateCmd)
}

// input is one submission waiting for evaluation. Image inputs carry the raw
// image until their text is extracted.
type input struct {
	sub       *parser.Submission
	image     []byte
	mediaType string
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{parser.StdinPath}
	}

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	defaultTask, err := scoring.ParseTask(taskName)
	if err != nil {
		return err
	}

	u := GetUI()

	progress := u.StartProgress(readsStdin(paths))
	defer func() {
		if progress != nil {
			progress.Done(nil)
		}
	}()

	// Stage 1: Load lexicon
	progress.SetStage(ui.StageLoadLexicon)

	eng, err := loadEngine(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Lexicon: %s\n", eng.Lexicon().Name)
		fmt.Printf("Task:    %s\n", defaultTask)
		fmt.Printf("Inputs:  %s\n\n", strings.Join(paths, ", "))
	}

	// Stage 2: Read submissions
	progress.SetStage(ui.StageReadInput)

	inputs := make([]input, 0, len(paths))
	for _, path := range paths {
		in, err := readInput(path, imageInput)
		if err != nil {
			return err
		}
		inputs = append(inputs, in)
	}

	var extractor collab.TextExtractor
	if imageInput {
		if extractor = newExtractor(cfg); extractor == nil {
			return fmt.Errorf("--image needs %s: %w", config.EnvAPIKey, collab.ErrNotConfigured)
		}
	}

	var judge collab.Judge
	if deep {
		if judge = newJudge(cfg); judge == nil {
			warn(u, "no AI backend configured; set %s or %s=%s", config.EnvAPIKey, config.EnvJudge, config.JudgeClaudeCode)
		}
	}

	// Stage 3: Evaluate
	progress.SetStage(ui.StageEvaluate)
	progress.SetFileCount(len(inputs))

	evals := make([]reporter.Evaluation, len(inputs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(concurrency, 1))

	for i, in := range inputs {
		g.Go(func() error {
			progress.FileStart(in.sub.Path)

			eval, err := evaluateInput(ctx, eng, in, defaultTask, extractor, judge)
			if err != nil {
				return err
			}
			evals[i] = eval
			progress.FileDone(eval.Path, eval.Result.BandScores.Overall)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Stop progress before reporting
	progress.Done(nil)
	progress = nil

	// Stage 4: Report results
	return newReporter(u, false).Report(evals)
}

// readInput loads path, or stdin for "-". Images are only sniffed here.
func readInput(path string, image bool) (input, error) {
	if !image {
		var (
			sub *parser.Submission
			err error
		)
		if path == parser.StdinPath {
			sub, err = parser.ParseReader(path, os.Stdin)
		} else {
			sub, err = parser.Parse(path)
		}
		if err != nil {
			return input{}, err
		}
		return input{sub: sub}, nil
	}

	content, err := readRaw(path)
	if err != nil {
		return input{}, err
	}
	mediaType := http.DetectContentType(content)
	if !collab.IsSupportedImage(mediaType) {
		return input{}, fmt.Errorf("%s: %w: %s", path, collab.ErrUnsupportedImage, mediaType)
	}
	return input{
		sub:       &parser.Submission{Path: path, Content: content},
		image:     content,
		mediaType: mediaType,
	}, nil
}

func readRaw(path string) ([]byte, error) {
	var (
		content []byte
		err     error
	)
	if path == parser.StdinPath {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}

// readsStdin reports whether any of paths is standard input
func readsStdin(paths []string) bool {
	return slices.Contains(paths, parser.StdinPath)
}

// evaluateInput scores one submission, extracting image text and asking
// the judge first when they are set
func evaluateInput(ctx context.Context, eng *engine.Engine, in input, def scoring.Task, extractor collab.TextExtractor, judge collab.Judge) (reporter.Evaluation, error) {
	sub := in.sub
	if in.image != nil {
		essay, err := extractor.ExtractText(ctx, in.image, in.mediaType)
		if err != nil {
			return reporter.Evaluation{}, fmt.Errorf("%s: %w", sub.Path, err)
		}
		if strings.TrimSpace(essay) == "" {
			return reporter.Evaluation{}, fmt.Errorf("%s: %w", sub.Path, collab.ErrNoText)
		}
		sub.Essay = essay
	}

	task, err := submissionTask(sub, def)
	if err != nil {
		return reporter.Evaluation{}, err
	}

	eval := reporter.Evaluation{
		Path:   sub.Path,
		Result: eng.Evaluate(sub.Essay, task),
	}
	if deep {
		eval.Opinion = collab.SecondOpinion(ctx, judge, sub.Essay, task)
	}
	return eval, nil
}
