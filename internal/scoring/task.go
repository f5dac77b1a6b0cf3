package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTask is returned by ParseTask for an unrecognized category
var ErrUnknownTask = errors.New("unknown task category")

// Task is the declared response category. The zero value is Extended.
type Task int

const (
	// Extended is the long-response category (IELTS Writing Task 2)
	Extended Task = iota
	// Short is the short-response category (IELTS Writing Task 1)
	Short
)

// ParseTask accepts "short", "task1", "extended" and "task2" in any case
func ParseTask(s string) (Task, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short", "task1":
		return Short, nil
	case "extended", "task2":
		return Extended, nil
	default:
		return Extended, fmt.Errorf("%w: %q (want short, extended, task1 or task2)", ErrUnknownTask, s)
	}
}

func (t Task) String() string {
	switch t {
	case Short:
		return "short"
	case Extended:
		return "extended"
	default:
		return "unknown"
	}
}

// MinWords is the minimum expected word count for the category
func (t Task) MinWords() int {
	if t == Short {
		return 150
	}
	return 250
}

// IdealWords is the word count the category aims for
func (t Task) IdealWords() int {
	if t == Short {
		return 200
	}
	return 300
}

// MarshalText renders the task as its name
func (t Task) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses any name accepted by ParseTask
func (t *Task) UnmarshalText(b []byte) error {
	parsed, err := ParseTask(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
