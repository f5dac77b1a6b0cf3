// Package collab holds the external capabilities the request layers can
// call on: reading essay text out of an image and asking a generative model
// for a second-opinion band score. The evaluation engine never depends on
// them; their failures are reported next to the engine result, not in it.
package collab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pthm/bandlint/internal/scoring"
)

var (
	// ErrNotConfigured is returned when a capability has no backend
	ErrNotConfigured = errors.New("capability not configured")
	// ErrNoText is returned when an image yields no readable text
	ErrNoText = errors.New("no text extracted from image")
	// ErrUnsupportedImage is returned for media types the extractor cannot read
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// SupportedImageTypes are the media types accepted by ExtractText
var SupportedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// TextExtractor converts an image of an essay into text
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte, mediaType string) (string, error)
}

// Judge independently scores an essay
type Judge interface {
	Judge(ctx context.Context, essay string, task scoring.Task) (*Assessment, error)
}

// Assessment is a generative model's band judgment. Scores are quarter-band
// quantized on ingest.
type Assessment struct {
	Overall           float64 `json:"overall"`
	TaskAchievement   float64 `json:"taskAchievement"`
	CoherenceCohesion float64 `json:"coherenceCohesion"`
	LexicalResource   float64 `json:"lexicalResource"`
	GrammaticalRange  float64 `json:"grammaticalRange"`
	Summary           string  `json:"summary"`
}

// Opinion is the outcome of asking a Judge: an assessment or the reason
// there is none
type Opinion struct {
	Assessment *Assessment `json:"assessment,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// SecondOpinion asks judge about essay and folds any failure into the
// returned Opinion
func SecondOpinion(ctx context.Context, judge Judge, essay string, task scoring.Task) *Opinion {
	if judge == nil {
		return &Opinion{Error: ErrNotConfigured.Error()}
	}
	a, err := judge.Judge(ctx, essay, task)
	if err != nil {
		return &Opinion{Error: err.Error()}
	}
	return &Opinion{Assessment: a}
}

// IsSupportedImage reports whether mediaType can be sent to an extractor
func IsSupportedImage(mediaType string) bool {
	for _, t := range SupportedImageTypes {
		if t == mediaType {
			return true
		}
	}
	return false
}

const judgePrompt = `You are an experienced IELTS examiner. Score the following %s-response essay (IELTS Writing %s) on the official band descriptors.

Essay:
%s

Provide a JSON response with the following structure:
{
  "overall": 0.0-9.0,
  "taskAchievement": 0.0-9.0,
  "coherenceCohesion": 0.0-9.0,
  "lexicalResource": 0.0-9.0,
  "grammaticalRange": 0.0-9.0,
  "summary": "two or three sentences explaining the scores"
}

Return ONLY the JSON, no other text.`

const extractPrompt = `Transcribe the essay in this image exactly as written. Keep paragraph breaks as blank lines. Do not correct spelling or grammar. Return only the essay text. If there is no readable text, return nothing.`

// maxEssayChars bounds the essay text sent in a prompt
const maxEssayChars = 12000

func buildJudgePrompt(essay string, task scoring.Task) string {
	label := "Task 2"
	if task == scoring.Short {
		label = "Task 1"
	}
	return fmt.Sprintf(judgePrompt, task, label, truncateContent(essay, maxEssayChars))
}

// parseAssessment decodes a model response into a quantized Assessment
func parseAssessment(response string) (*Assessment, error) {
	var a Assessment
	if err := json.Unmarshal([]byte(ExtractJSON(response)), &a); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w (response: %s)", err, TruncateForError(response))
	}

	a.Overall = scoring.Quantize(a.Overall)
	a.TaskAchievement = scoring.Quantize(a.TaskAchievement)
	a.CoherenceCohesion = scoring.Quantize(a.CoherenceCohesion)
	a.LexicalResource = scoring.Quantize(a.LexicalResource)
	a.GrammaticalRange = scoring.Quantize(a.GrammaticalRange)
	a.Summary = strings.TrimSpace(a.Summary)
	return &a, nil
}

// ExtractJSON attempts to extract JSON from a response that might be wrapped in markdown
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	// If it starts with {, assume it's already JSON
	if strings.HasPrefix(s, "{") {
		return s
	}

	// Try to find JSON block in markdown
	if idx := strings.Index(s, "```json"); idx != -1 {
		start := idx + 7
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}

	// Try to find raw JSON block
	if idx := strings.Index(s, "```"); idx != -1 {
		start := idx + 3
		// Skip any language identifier
		if nlIdx := strings.Index(s[start:], "\n"); nlIdx != -1 {
			start += nlIdx + 1
		}
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}

	// Try to find { ... } pattern
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			return s[start : end+1]
		}
	}

	return s
}

// TruncateForError truncates a string for inclusion in error messages
func TruncateForError(s string) string {
	if len(s) > 200 {
		return cutAt(s, 200) + "..."
	}
	return s
}

// truncateContent truncates content to a maximum length
func truncateContent(content string, maxLen int) string {
	if len(content) <= maxLen {
		return content
	}
	return cutAt(content, maxLen) + "\n...[truncated]..."
}

// cutAt returns the longest prefix of s no longer than n bytes that ends on
// a rune boundary
func cutAt(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
