// SPDX-License-Identifier: MIT

package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/katalvlaran/cellnet/matrix"
)

const (
	historyCapacity = 240
	plotHeight      = 6
	plotWidth       = 48
)

// shades maps gray levels to glyphs, darkest first.
var shades = []rune{'█', '▓', '▒', '░', ' '}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).MarginTop(1)
)

type frameMsg struct {
	frame  *matrix.Matrix
	flags  Flags
	blacks int
}

type termModel struct {
	title    string
	frame    *matrix.Matrix
	frames   int
	history  []float64
	blocking bool
	ack      chan<- struct{}
}

func (m termModel) Init() tea.Cmd { return nil }

func (m termModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = msg.frame
		m.frames++
		m.blocking = msg.flags.Block
		m.history = append(m.history, float64(msg.blacks))
		if len(m.history) > historyCapacity {
			m.history = m.history[len(m.history)-historyCapacity:]
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.release()
			return m, tea.Quit
		}
		m.release()
	}

	return m, nil
}

// release acknowledges a blocking frame.
func (m *termModel) release() {
	if !m.blocking {
		return
	}
	m.blocking = false
	select {
	case m.ack <- struct{}{}:
	default:
	}
}

func (m termModel) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(m.title) + "\n")
	if m.frame != nil {
		s.WriteString(canvasStyle.Render(renderFrame(m.frame)) + "\n")
	}
	s.WriteString(labelStyle.Render("frames") + valueStyle.Render(fmt.Sprintf("%d", m.frames)) + "\n")
	if n := len(m.history); n > 0 {
		s.WriteString(labelStyle.Render("blacks") + valueStyle.Render(fmt.Sprintf("%.0f", m.history[n-1])) + "\n")
	}
	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("black cells"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.blocking {
		s.WriteString(promptStyle.Render("press any key to continue") + "\n")
	}

	return s.String()
}

// renderFrame draws one glyph per cell.
func renderFrame(m *matrix.Matrix) string {
	w, h := m.Shape()
	vals := m.Values()
	var b strings.Builder
	b.Grow((w + 1) * h * 3)
	for y := 0; y < h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			g := int(Shade(vals[y*w+x]))
			b.WriteRune(shades[g*(len(shades)-1)/255])
		}
	}

	return b.String()
}

// Terminal shows frames in an interactive terminal view. It owns a
// bubbletea program that runs until a Close frame arrives, Close is called,
// or the user presses ctrl+c.
type Terminal struct {
	prog *tea.Program
	ack  chan struct{}
	done chan struct{}

	closeOnce sync.Once
	err       error
}

// TerminalOption customizes NewTerminal.
type TerminalOption func(*terminalConfig)

type terminalConfig struct {
	title  string
	input  io.Reader
	output io.Writer
	plain  bool
}

// WithTitle sets the heading of the view.
func WithTitle(title string) TerminalOption {
	return func(c *terminalConfig) { c.title = title }
}

// WithIO redirects the program's input and output; a nil input disables
// keyboard handling.
func WithIO(in io.Reader, out io.Writer) TerminalOption {
	return func(c *terminalConfig) {
		c.input = in
		c.output = out
		c.plain = true
	}
}

// NewTerminal starts the view.
func NewTerminal(opts ...TerminalOption) *Terminal {
	cfg := terminalConfig{title: "cellnet"}
	for _, opt := range opts {
		opt(&cfg)
	}

	ack := make(chan struct{}, 1)
	popts := []tea.ProgramOption{}
	if cfg.plain {
		popts = append(popts, tea.WithInput(cfg.input), tea.WithOutput(cfg.output), tea.WithoutSignalHandler())
	} else {
		popts = append(popts, tea.WithAltScreen())
	}

	t := &Terminal{
		prog: tea.NewProgram(termModel{title: cfg.title, ack: ack}, popts...),
		ack:  ack,
		done: make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		_, t.err = t.prog.Run()
	}()

	return t
}

// Show renders frame. A Block frame waits for a key press; a Close frame
// shuts the view down.
func (t *Terminal) Show(frame *matrix.Matrix, flags Flags) {
	if !flags.Show {
		return
	}
	n := countBlacks(frame)
	t.prog.Send(frameMsg{frame: frame, flags: flags, blacks: n})

	if flags.Block {
		select {
		case <-t.ack:
		case <-t.done:
		}
	}
	if flags.Close {
		_ = t.Close()
	}
}

// countBlacks counts black cells over the whole frame, border included.
func countBlacks(frame *matrix.Matrix) int {
	padded, err := frame.Expand(1)
	if err != nil {
		return 0
	}
	n, _ := padded.Blacks(matrix.All)

	return n
}

// Done is closed once the program has exited.
func (t *Terminal) Done() <-chan struct{} { return t.done }

// Close quits the program and waits for it to restore the terminal.
func (t *Terminal) Close() error {
	t.closeOnce.Do(t.prog.Quit)
	<-t.done

	return t.err
}
