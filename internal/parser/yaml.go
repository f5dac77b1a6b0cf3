package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses YAML submissions with essay and task keys
type YAMLParser struct{}

type yamlSubmission struct {
	Essay    *string `yaml:"essay"`
	Task     string  `yaml:"task"`
	TaskType string  `yaml:"taskType"`
}

// CanParse returns true if this parser can handle the file
func (p *YAMLParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeYAML
}

// Parse parses a YAML file
func (p *YAMLParser) Parse(path string, content []byte) (*Submission, error) {
	var data yamlSubmission
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if data.Essay == nil {
		return nil, &SubmissionError{Path: path, Message: "essay is required"}
	}

	task := data.Task
	if task == "" {
		task = data.TaskType
	}

	return &Submission{
		Path:     path,
		Content:  content,
		FileType: FileTypeYAML,
		Essay:    *data.Essay,
		Task:     task,
	}, nil
}
