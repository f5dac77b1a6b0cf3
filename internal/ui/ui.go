package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Output formats accepted by --format
const (
	FormatTerminal = "terminal"
	FormatJSON     = "json"
)

// OutputMode determines how reports are rendered
type OutputMode int

const (
	// OutputModeInteractive styles reports and may animate progress
	OutputModeInteractive OutputMode = iota
	// OutputModePlain renders reports as unstyled text (pipes, NO_COLOR, dumb terminals)
	OutputModePlain
	// OutputModeJSON writes machine-readable reports only
	OutputModeJSON
)

// UI carries the writers and styles for one invocation
type UI struct {
	Mode      OutputMode
	Writer    io.Writer
	ErrWriter io.Writer
	Styles    *Styles

	// errTTY records whether progress can be drawn on ErrWriter
	errTTY bool
}

// New creates a UI for the given --format, detecting terminals on w and errW
func New(w, errW io.Writer, format string) *UI {
	mode := detectMode(w, format)
	return &UI{
		Mode:      mode,
		Writer:    w,
		ErrWriter: errW,
		Styles:    NewStyles(mode == OutputModeInteractive),
		errTTY:    isTerminal(errW),
	}
}

// ValidateFormat rejects --format values other than terminal and json
func ValidateFormat(format string) error {
	switch format {
	case FormatTerminal, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", format, FormatTerminal, FormatJSON)
	}
}

func detectMode(w io.Writer, format string) OutputMode {
	if format == FormatJSON {
		return OutputModeJSON
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if isTerminal(w) {
		return OutputModeInteractive
	}
	return OutputModePlain
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsInteractive reports whether reports are styled for a terminal
func (ui *UI) IsInteractive() bool {
	return ui.Mode == OutputModeInteractive
}

// IsJSON reports whether JSON output was requested
func (ui *UI) IsJSON() bool {
	return ui.Mode == OutputModeJSON
}

// ShowsProgress reports whether a progress display should be drawn. It is
// drawn on stderr, so it needs an interactive report and a terminal there.
func (ui *UI) ShowsProgress() bool {
	return ui.IsInteractive() && ui.errTTY
}
