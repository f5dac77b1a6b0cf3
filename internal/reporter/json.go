package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/bandlint/internal/collab"
	"github.com/pthm/bandlint/internal/engine"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	Evaluations []JSONEvaluation `json:"evaluations"`
	Summary     Summary          `json:"summary"`
}

// JSONEvaluation represents one evaluation in JSON format
type JSONEvaluation struct {
	File         string          `json:"file"`
	Result       *engine.Result  `json:"result"`
	AIAssessment *collab.Opinion `json:"aiAssessment,omitempty"`
}

// Report outputs evaluations as JSON
func (r *JSONReporter) Report(evals []Evaluation) error {
	output := JSONOutput{
		Evaluations: make([]JSONEvaluation, 0, len(evals)),
		Summary:     ComputeSummary(evals),
	}

	for _, e := range evals {
		output.Evaluations = append(output.Evaluations, JSONEvaluation{
			File:         e.Path,
			Result:       e.Result,
			AIAssessment: e.Opinion,
		})
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
