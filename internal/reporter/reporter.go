package reporter

import (
	"github.com/pthm/bandlint/internal/collab"
	"github.com/pthm/bandlint/internal/engine"
)

// Evaluation is one evaluated submission
type Evaluation struct {
	Path   string
	Result *engine.Result
	// Opinion is the generative second opinion, nil when not requested
	Opinion *collab.Opinion
}

// Reporter defines the interface for outputting evaluation results
type Reporter interface {
	// Report outputs the evaluations in order
	Report(evals []Evaluation) error
}

// Summary holds summary statistics for an evaluation run
type Summary struct {
	Files          int     `json:"files"`
	AverageOverall float64 `json:"averageOverall"`
	Fragments      int     `json:"fragments"`
	RunOns         int     `json:"runOns"`
	Mechanics      int     `json:"mechanics"`
}

// ComputeSummary computes summary statistics from evaluations
func ComputeSummary(evals []Evaluation) Summary {
	s := Summary{Files: len(evals)}
	if len(evals) == 0 {
		return s
	}

	total := 0.0
	for _, e := range evals {
		total += e.Result.BandScores.Overall
		s.Fragments += len(e.Result.Features.Fragments)
		s.RunOns += len(e.Result.Features.RunOns)
		for _, issue := range e.Result.Features.Mechanics {
			s.Mechanics += issue.Count
		}
	}
	s.AverageOverall = total / float64(len(evals))

	return s
}
