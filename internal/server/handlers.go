package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pthm/bandlint/internal/collab"
	"github.com/pthm/bandlint/internal/engine"
	"github.com/pthm/bandlint/internal/scoring"
	"github.com/pthm/bandlint/internal/version"
)

const (
	maxBodyBytes  = 1 << 20
	maxImageBytes = 10 << 20
)

const (
	essayRequired   = "Essay text is required and must be a string"
	taskTypeInvalid = "Task type must be a string such as task1 or task2"
	invalidJSON     = "Request body must be valid JSON"
)

//go:embed sample_essay.txt
var sampleEssay string

// EvaluateRequest is the body of POST /evaluate
type EvaluateRequest struct {
	Essay    *string `json:"essay" validate:"required"`
	TaskType string  `json:"taskType"`
	Deep     bool    `json:"deep"`
}

// EvaluateResponse is returned by the evaluation endpoints
type EvaluateResponse struct {
	ID            string          `json:"id"`
	Success       bool            `json:"success"`
	TaskType      scoring.Task    `json:"taskType"`
	ExtractedText string          `json:"extractedText,omitempty"`
	Result        *engine.Result  `json:"result"`
	AIAssessment  *collab.Opinion `json:"aiAssessment,omitempty"`
}

// handleInfo describes the service
func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"name":    "bandlint",
		"version": version.Short(),
		"endpoints": []string{
			"GET /health",
			"POST /evaluate",
			"POST /evaluate/image",
			"GET /sample-response",
		},
		"imageEvaluation": s.extractor != nil,
		"aiAssessment":    s.judge != nil,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleEvaluate scores the essay in a JSON body
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, decodeError(err))
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.fail(w, &ErrInvalidInput{Field: validationField(err), Message: essayRequired})
		return
	}

	task, err := parseTask(req.TaskType)
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := s.evaluate(*req.Essay, task)
	if req.Deep {
		resp.AIAssessment = collab.SecondOpinion(r.Context(), s.judge, *req.Essay, task)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleEvaluateImage reads the essay from an uploaded image and scores it
func (s *Server) handleEvaluateImage(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		s.fail(w, &ErrCapabilityUnavailable{Capability: "image text extraction"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		s.fail(w, &ErrInvalidInput{Field: "image", Message: "A multipart form with an image file is required"})
		return
	}

	task, err := parseTask(r.FormValue("taskType"))
	if err != nil {
		s.fail(w, err)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.fail(w, &ErrInvalidInput{Field: "image", Message: "A multipart form with an image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, fmt.Errorf("failed to read image: %w", err))
		return
	}

	mediaType := http.DetectContentType(data)
	if !collab.IsSupportedImage(mediaType) {
		s.fail(w, &ErrInvalidInput{
			Field:   "image",
			Message: fmt.Sprintf("Unsupported image type %s (want %s)", mediaType, strings.Join(collab.SupportedImageTypes, ", ")),
		})
		return
	}

	essay, err := s.extractor.ExtractText(r.Context(), data, mediaType)
	switch {
	case errors.Is(err, collab.ErrNotConfigured):
		s.fail(w, &ErrCapabilityUnavailable{Capability: "image text extraction"})
		return
	case err != nil:
		s.fail(w, &ErrExtraction{Cause: err})
		return
	case strings.TrimSpace(essay) == "":
		s.fail(w, &ErrExtraction{Cause: collab.ErrNoText})
		return
	}

	resp := s.evaluate(essay, task)
	resp.ExtractedText = essay
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleSampleResponse evaluates the built-in sample essay
func (s *Server) handleSampleResponse(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.evaluate(sampleEssay, scoring.Extended))
}

func (s *Server) evaluate(essay string, task scoring.Task) *EvaluateResponse {
	return &EvaluateResponse{
		ID:       uuid.NewString(),
		Success:  true,
		TaskType: task,
		Result:   s.engine.Evaluate(essay, task),
	}
}

// parseTask maps an optional taskType field to a task, defaulting to extended
func parseTask(s string) (scoring.Task, error) {
	if strings.TrimSpace(s) == "" {
		return scoring.Extended, nil
	}
	task, err := scoring.ParseTask(s)
	if err != nil {
		return task, &ErrInvalidInput{Field: "taskType", Message: err.Error()}
	}
	return task, nil
}

// decodeError names the part of a JSON body that could not be decoded
func decodeError(err error) *ErrInvalidInput {
	var (
		typeErr *json.UnmarshalTypeError
		sizeErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &typeErr):
		switch typeErr.Field {
		case "essay":
			return &ErrInvalidInput{Field: "essay", Message: essayRequired}
		case "taskType":
			return &ErrInvalidInput{Field: "taskType", Message: taskTypeInvalid}
		default:
			return &ErrInvalidInput{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("Field %s must be a %s", typeErr.Field, typeErr.Type),
			}
		}
	case errors.As(err, &sizeErr):
		return &ErrInvalidInput{Field: "request", Message: fmt.Sprintf("Request body exceeds %d bytes", sizeErr.Limit)}
	case errors.Is(err, io.EOF):
		return &ErrInvalidInput{Field: "essay", Message: essayRequired}
	default:
		return &ErrInvalidInput{Field: "request", Message: invalidJSON}
	}
}

// validationField returns the JSON name of the first field that failed validation
func validationField(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return strings.ToLower(validationErrors[0].Field())
	}
	return "request"
}
