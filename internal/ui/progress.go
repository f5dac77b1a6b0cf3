package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressController drives the progress display of an evaluation run.
// A nil controller is valid and ignores every call.
type ProgressController struct {
	program *tea.Program
}

func (ui *UI) programOptions(readsStdin bool) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithOutput(ui.ErrWriter)}
	if readsStdin {
		// the essay arrives on stdin, so keystrokes cannot be read from it
		opts = append(opts, tea.WithInput(nil))
	}
	return opts
}

// StartProgress starts the progress display when stderr is a terminal and
// reports are styled. Returns nil otherwise.
func (ui *UI) StartProgress(readsStdin bool) *ProgressController {
	if !ui.ShowsProgress() {
		return nil
	}

	p := tea.NewProgram(NewModel(ui.Styles), ui.programOptions(readsStdin)...)
	go func() {
		// a failed progress display must not fail the run
		_, _ = p.Run()
	}()

	return &ProgressController{program: p}
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage Stage) {
	if pc != nil {
		pc.program.Send(StageMsg(stage))
	}
}

// SetFileCount sets the total number of submissions to evaluate
func (pc *ProgressController) SetFileCount(count int) {
	if pc != nil {
		pc.program.Send(FileCountMsg(count))
	}
}

// FileStart marks path as being evaluated
func (pc *ProgressController) FileStart(path string) {
	if pc != nil {
		pc.program.Send(FileStartMsg(path))
	}
}

// FileDone records that path finished with the given overall band
func (pc *ProgressController) FileDone(path string, overall float64) {
	if pc != nil {
		pc.program.Send(FileDoneMsg{Path: path, Overall: overall})
	}
}

// Done signals that all work is complete and waits for the display to clear
func (pc *ProgressController) Done(err error) {
	if pc != nil {
		pc.program.Send(DoneMsg{Err: err})
		pc.program.Wait()
	}
}

// Spinner shows a single waiting message, used around AI requests
type Spinner struct {
	program *tea.Program
	done    chan struct{}
}

type spinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case DoneMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

// StartSpinner animates message on stderr. Without a progress terminal the
// message is printed once, unless the output is JSON.
func (ui *UI) StartSpinner(message string, readsStdin bool) *Spinner {
	if !ui.ShowsProgress() {
		if !ui.IsJSON() {
			fmt.Fprintln(ui.ErrWriter, message)
		}
		return nil
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	p := tea.NewProgram(spinnerModel{spinner: s, message: message}, ui.programOptions(readsStdin)...)

	sp := &Spinner{program: p, done: make(chan struct{})}
	go func() {
		_, _ = p.Run()
		close(sp.done)
	}()
	return sp
}

// Stop clears the spinner
func (sp *Spinner) Stop() {
	if sp != nil {
		sp.program.Send(DoneMsg{})
		<-sp.done
	}
}
