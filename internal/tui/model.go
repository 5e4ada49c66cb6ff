package tui

import (
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/hay-kot/slate/internal/core/config"
	"github.com/hay-kot/slate/internal/core/tools"
	"github.com/hay-kot/slate/internal/styles"
	"github.com/hay-kot/slate/internal/whiteboard"
)

// Key constants for event handling.
const (
	keyCtrlC = "ctrl+c"
	keyEsc   = "esc"
	keyHelp  = "?"
	keyQuit  = "q"
)

// headerRows and footerRows surround the canvas: a title line above, the
// status and help lines below.
const (
	headerRows = 1
	footerRows = 2
)

// helpColumn is the number of bindings per column in the full help view.
const helpColumn = 6

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	service  *whiteboard.Service
	handler  *KeybindingHandler
	help     help.Model
	cells    cellStyles
	view     viewport
	width    int
	height   int
	showHelp bool
	message  string
	err      error
	quitting bool

	// panFrom is the last cell seen while dragging with the hand tool.
	panFrom *image.Point
}

// New creates a new TUI model for the session.
func New(service *whiteboard.Service, cfg *config.Config) Model {
	h := help.New()
	h.ShortSeparator = " " + iconDot + " "
	h.Styles.ShortKey = mutedStyle
	h.Styles.ShortDesc = mutedStyle
	h.Styles.ShortSeparator = mutedStyle
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(styles.ColorBlue)
	h.Styles.FullDesc = mutedStyle
	h.Styles.FullSeparator = mutedStyle

	return Model{
		service: service,
		handler: NewKeybindingHandler(cfg.Keybindings, cfg.Palette, service),
		help:    h,
		cells:   cellStyles{},
		view:    viewport{origin: image.Pt(0, headerRows)},
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}

	return m, nil
}

// layout sizes the viewport from the window and the help view height.
func (m *Model) layout() {
	rows := m.height - headerRows - footerRows
	if m.showHelp {
		rows -= lipgloss.Height(m.fullHelp()) - 1
	}

	m.view.cols = max(m.width, 1)
	m.view.rows = max(rows, 1)
	m.view = m.view.clamp(m.service.Bounds())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	switch k {
	case keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case keyEsc:
		if m.service.Drawing() {
			m.service.CancelStroke()
			m.message = "stroke cancelled"
			return m, nil
		}
		m.showHelp = false
		m.layout()
		return m, nil
	case keyHelp:
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil
	}

	if action, ok := m.handler.Resolve(k); ok {
		m.message, m.err = m.handler.Execute(action)
		return m, nil
	}

	if k == keyQuit {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.message, m.err = m.handler.Execute(Action{Type: ActionTypeSizeUp})
		return m
	case tea.MouseButtonWheelDown:
		m.message, m.err = m.handler.Execute(Action{Type: ActionTypeSizeDown})
		return m
	}

	if m.service.Selection().Tool.ID == tools.Hand {
		return m.handlePan(msg)
	}

	p, inside := m.view.pixel(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return m
		}
		m.err = m.service.BeginStroke(p)
		m.message = ""
	case tea.MouseActionMotion:
		m.service.ContinueStroke(p)
	case tea.MouseActionRelease:
		if m.service.Drawing() {
			m.err = m.service.EndStroke(p)
		}
	}

	return m
}

func (m Model) handlePan(msg tea.MouseMsg) Model {
	cell := image.Pt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.panFrom = &cell
		}
	case tea.MouseActionMotion:
		if m.panFrom == nil {
			return m
		}
		d := m.panFrom.Sub(cell)
		m.view = m.view.pan(image.Pt(d.X, d.Y*2), m.service.Bounds())
		m.panFrom = &cell
	case tea.MouseActionRelease:
		m.panFrom = nil
	}

	return m
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	sections := []string{
		m.headerView(),
		m.view.render(m.service.Frame(), m.cells),
		m.statusView(),
		m.footerView(),
	}
	return strings.Join(sections, "\n")
}

func (m Model) headerView() string {
	b := m.service.Board()
	counts := fmt.Sprintf("  %d notes %s %d text", len(b.StickyNotes), iconDot, len(b.TextElements))
	return titleStyle.Render(b.Title) + mutedStyle.Render(counts)
}

func (m Model) statusView() string {
	st := m.service.Status()
	sel := m.service.Selection()
	sep := mutedStyle.Render(" " + iconDot + " ")

	undo := disabledStyle.Render(iconUndo)
	if st.CanUndo {
		undo = enabledStyle.Render(iconUndo)
	}
	redo := disabledStyle.Render(iconRedo)
	if st.CanRedo {
		redo = enabledStyle.Render(iconRedo)
	}

	parts := []string{
		sel.Tool.Name,
		sel.Brush.Name,
		swatch(sel.Color) + " " + st.Color,
		fmt.Sprintf("%.0fpx", st.Width),
		fmt.Sprintf("%.0f%%", st.Opacity*100),
		fmt.Sprintf("history %d/%d", st.Cursor+1, st.Len),
		humanize.IBytes(uint64(st.Bytes)),
		undo + " " + redo,
	}

	line := statusStyle.Render(strings.Join(parts, sep))
	if st.Drawing {
		line += sep + drawingStyle.Render("drawing")
	}
	return line
}

func (m Model) footerView() string {
	if m.showHelp {
		return m.fullHelp()
	}
	if m.err != nil {
		return errorStyle.Render("error: " + m.err.Error())
	}
	if m.message != "" {
		return messageStyle.Render(m.message)
	}
	return helpStyle.Render(m.help.ShortHelpView(m.shortBindings()))
}

func (m Model) shortBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(keyHelp), key.WithHelp(keyHelp, "help")),
		key.NewBinding(key.WithKeys(keyQuit), key.WithHelp(keyQuit, "quit")),
	}
}

func (m Model) fullHelp() string {
	bindings := append(m.handler.KeyBindings(), m.shortBindings()...)

	var groups [][]key.Binding
	for chunk := range slices.Chunk(bindings, helpColumn) {
		groups = append(groups, chunk)
	}
	return helpStyle.Render(m.help.FullHelpView(groups))
}
