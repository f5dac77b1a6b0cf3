package parser

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/submission.schema.json
var submissionSchemaJSON string

var submissionSchema *gojsonschema.Schema

func init() {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(submissionSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("failed to load submission schema: %v", err))
	}
	submissionSchema = schema
}

// JSONParser parses JSON submissions of the form {"essay": ..., "taskType": ...}
type JSONParser struct{}

type jsonSubmission struct {
	Essay    string `json:"essay"`
	TaskType string `json:"taskType"`
}

// CanParse returns true if this parser can handle the file
func (p *JSONParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeJSON
}

// Parse validates content against the submission schema and decodes it
func (p *JSONParser) Parse(path string, content []byte) (*Submission, error) {
	result, err := submissionSchema.Validate(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return nil, &SubmissionError{Path: path, Message: strings.Join(msgs, "; ")}
	}

	var data jsonSubmission
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &Submission{
		Path:     path,
		Content:  content,
		FileType: FileTypeJSON,
		Essay:    data.Essay,
		Task:     data.TaskType,
	}, nil
}
