package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxRecent is how many finished submissions stay listed under the bar
const maxRecent = 4

// Stage is the phase an evaluation run is in
type Stage int

const (
	StageLoadLexicon Stage = iota
	StageReadInput
	StageEvaluate
	StageDone
)

func (s Stage) label() string {
	switch s {
	case StageLoadLexicon:
		return "Loading lexicon"
	case StageReadInput:
		return "Reading submissions"
	case StageEvaluate:
		return "Evaluating"
	default:
		return ""
	}
}

// Messages sent by ProgressController
type (
	StageMsg     Stage
	FileCountMsg int
	// FileStartMsg names a submission that started evaluating
	FileStartMsg string
	// FileDoneMsg reports a finished submission and its overall band
	FileDoneMsg struct {
		Path    string
		Overall float64
	}
	DoneMsg struct{ Err error }
)

type finished struct {
	name    string
	overall float64
}

// Model is the bubbletea model behind the batch progress display.
// Submissions are evaluated concurrently, so several can be in flight.
type Model struct {
	styles   *Styles
	stage    Stage
	spinner  spinner.Model
	bar      progress.Model
	total    int
	inFlight map[string]bool
	recent   []finished
	done     int
	bandSum  float64
	quitting bool
	err      error
}

// NewModel creates a progress model rendering bands with styles
func NewModel(styles *Styles) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	return Model{
		styles:   styles,
		stage:    StageLoadLexicon,
		spinner:  s,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		inFlight: make(map[string]bool),
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-20, 10), 40)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StageMsg:
		m.stage = Stage(msg)

	case FileCountMsg:
		m.total = int(msg)

	case FileStartMsg:
		m.inFlight[string(msg)] = true

	case FileDoneMsg:
		delete(m.inFlight, msg.Path)
		m.done++
		m.bandSum += msg.Overall
		m.recent = append(m.recent, finished{name: filepath.Base(msg.Path), overall: msg.Overall})
		if len(m.recent) > maxRecent {
			m.recent = m.recent[len(m.recent)-maxRecent:]
		}

	case DoneMsg:
		m.err = msg.Err
		m.stage = StageDone
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// AverageBand is the mean overall band of the finished submissions
func (m Model) AverageBand() float64 {
	if m.done == 0 {
		return 0
	}
	return m.bandSum / float64(m.done)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.stage != StageEvaluate || m.total == 0 {
		return fmt.Sprintf("%s %s...", m.spinner.View(), m.stage.label())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d/%d", m.bar.ViewAs(float64(m.done)/float64(m.total)), m.done, m.total)
	if m.done > 0 {
		avg := fmt.Sprintf("%.2f", m.AverageBand())
		fmt.Fprintf(&sb, "  avg band %s", m.styles.Band(m.AverageBand()).Render(avg))
	}
	sb.WriteString("\n")

	for _, f := range m.recent {
		band := m.styles.Band(f.overall).Render(fmt.Sprintf("%.2f", f.overall))
		fmt.Fprintf(&sb, "  %s %s %s\n", m.styles.Success.Render(m.styles.IconSuccess), f.name, band)
	}

	if len(m.inFlight) > 0 {
		names := make([]string, 0, len(m.inFlight))
		for p := range m.inFlight {
			names = append(names, filepath.Base(p))
		}
		sort.Strings(names)
		fmt.Fprintf(&sb, "%s %s %s", m.spinner.View(), m.stage.label(), strings.Join(names, ", "))
	}

	return sb.String()
}
