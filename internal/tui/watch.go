package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akeeley/heapsched/internal/sched"
	"github.com/akeeley/heapsched/internal/task"
)

// Playback pacing bounds.
const (
	defaultDelay = 500 * time.Millisecond
	minDelay     = 50 * time.Millisecond
	maxDelay     = 4 * time.Second
)

// maxEvents caps the playback feed; older events scroll off.
const maxEvents = 200

// event is one line in the playback feed.
type event struct {
	kind string // arrive, exec, done, error
	tick int
	text string
}

// KeyMap defines the key bindings for the watch view.
type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	PlayPause key.Binding
	Step      key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Restart   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "step"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
	}
}

// Model plays a workload through the scheduler one tick at a time.
type Model struct {
	// Data
	workload *task.Workload
	sch      *sched.Scheduler
	maxTicks int
	events   []event

	// UI state
	playing  bool
	finished bool
	delay    time.Duration
	showHelp bool

	// Dimensions
	width  int
	height int

	// Key bindings
	keys KeyMap
}

// NewModel creates a playback model over the given workload. maxTicks caps
// the scheduler clock as a safety limit; 0 means no cap.
func NewModel(w *task.Workload, maxTicks int) Model {
	return Model{
		workload: w,
		sch:      sched.New(w.Tasks, maxTicks),
		maxTicks: maxTicks,
		events:   make([]event, 0),
		playing:  true,
		delay:    defaultDelay,
		keys:     DefaultKeyMap(),
	}
}

// tickMsg paces automatic playback.
type tickMsg time.Time

// Init starts the playback pulse.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// tick returns a command that sends tickMsg after the current delay.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.PlayPause):
			if !m.finished {
				m.playing = !m.playing
			}
			return m, nil

		case key.Matches(msg, m.keys.Step):
			if !m.playing && !m.finished {
				m.advance()
			}
			return m, nil

		case key.Matches(msg, m.keys.Faster):
			m.delay = max(m.delay/2, minDelay)
			return m, nil

		case key.Matches(msg, m.keys.Slower):
			m.delay = min(m.delay*2, maxDelay)
			return m, nil

		case key.Matches(msg, m.keys.Restart):
			m.restart()
			return m, nil
		}

	case tickMsg:
		if m.playing && !m.finished {
			m.advance()
		}
		// Keep the pulse running so resuming needs no new command.
		return m, m.tick()
	}

	return m, nil
}

// advance runs one scheduler step and records what happened.
func (m *Model) advance() {
	res, ok := m.sch.Step()
	if !ok {
		m.finished = true
		m.playing = false
		if err := m.sch.Err(); err != nil {
			m.addEvent("error", m.sch.Clock(), err.Error())
		} else {
			stats := m.sch.Trace().Stats()
			m.addEvent("done", stats.FinalTick,
				fmt.Sprintf("all %d tasks executed, avg wait %.1f", stats.Executed, stats.AvgWait()))
		}
		return
	}

	for _, rec := range res.Arrived {
		m.addEvent("arrive", res.Tick, fmt.Sprintf("%s arrived (priority %d)", rec.ID, rec.Priority))
	}

	e := res.Executed
	text := fmt.Sprintf("executed %s (waited %d)", e.Task.ID, e.Waited)
	if e.Task.MissedDeadline(e.Tick) {
		text += ", deadline missed"
	}
	m.addEvent("exec", res.Tick, text)
}

func (m *Model) addEvent(kind string, tick int, text string) {
	m.events = append(m.events, event{kind: kind, tick: tick, text: text})
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

// restart rebuilds the scheduler and plays the workload again from tick zero.
func (m *Model) restart() {
	m.sch = sched.New(m.workload.Tasks, m.maxTicks)
	m.events = m.events[:0]
	m.finished = false
	m.playing = true
}

// View renders the playback screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var sb strings.Builder

	title := "Heapsched"
	if m.workload.Name != "" {
		title = fmt.Sprintf("Heapsched - %s", m.workload.Name)
	}
	sb.WriteString(TitleStyle.Width(m.width).Render(title))
	sb.WriteString("\n")

	// Calculate pane dimensions
	topHeight := (m.height - 4) * 2 / 3
	bottomHeight := m.height - 4 - topHeight
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	queuePane := m.renderQueuePane(leftWidth-4, topHeight-2)
	queueBox := PaneBorder(false).
		Width(leftWidth - 2).
		Height(topHeight).
		Render(queuePane)

	tracePane := m.renderTracePane(rightWidth-4, topHeight-2)
	traceBox := PaneBorder(false).
		Width(rightWidth - 2).
		Height(topHeight).
		Render(tracePane)

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, queueBox, traceBox))
	sb.WriteString("\n")

	eventsPane := m.renderEventsPane(m.width-4, bottomHeight-2)
	eventsBox := PaneBorder(false).
		Width(m.width - 2).
		Height(bottomHeight).
		Render(eventsPane)
	sb.WriteString(eventsBox)
	sb.WriteString("\n")

	sb.WriteString(m.renderStatusBar())

	return sb.String()
}

// renderQueuePane lists the queued tasks in extraction order, head first.
func (m Model) renderQueuePane(width, height int) string {
	var sb strings.Builder

	pending := m.sch.Pending()

	header := HeaderStyle.Render(fmt.Sprintf("Queue [%d]", len(pending)))
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", max(1, width)))
	sb.WriteString("\n")

	if len(pending) == 0 {
		sb.WriteString(MutedStyle.Render("Empty"))
		return sb.String()
	}

	slices.SortFunc(pending, task.Compare)

	for i, rec := range pending {
		if i >= height-3 {
			sb.WriteString(MutedStyle.Render(fmt.Sprintf("... and %d more", len(pending)-i)))
			break
		}

		prefix := "  "
		if i == 0 {
			prefix = "> "
		}

		pri := PriorityStyle(rec.Priority).Width(4).Render(fmt.Sprintf("p%d", rec.Priority))
		id := lipgloss.NewStyle().Width(14).Render(Truncate(rec.ID, 13))

		deadline := ""
		if rec.HasDeadline() {
			deadline = MutedStyle.Render(fmt.Sprintf("due %d", *rec.Deadline))
		}

		line := fmt.Sprintf("%s%s %s %s", prefix, pri, id, deadline)
		if i == 0 {
			line = NextStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderTracePane shows the tail of the execution trace.
func (m Model) renderTracePane(width, height int) string {
	var sb strings.Builder

	trace := m.sch.Trace()

	header := HeaderStyle.Render(fmt.Sprintf("Trace [%d/%d]", len(trace), m.sch.Total()))
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", max(1, width)))
	sb.WriteString("\n")

	if len(trace) == 0 {
		sb.WriteString(MutedStyle.Render("Nothing executed yet"))
		return sb.String()
	}

	visible := max(1, height-3)
	start := max(0, len(trace)-visible)

	for _, e := range trace[start:] {
		tick := MutedStyle.Width(6).Render(fmt.Sprintf("t=%d", e.Tick))
		id := PriorityStyle(e.Task.Priority).Width(14).Render(Truncate(e.Task.ID, 13))
		wait := fmt.Sprintf("waited %d", e.Waited)

		mark := ""
		if e.Task.MissedDeadline(e.Tick) {
			mark = " " + ErrorStyle.Render("✗ missed")
		}

		sb.WriteString(fmt.Sprintf("%s %s %s%s\n", tick, id, wait, mark))
	}

	return sb.String()
}

// renderEventsPane shows the most recent playback events.
func (m Model) renderEventsPane(width, height int) string {
	var sb strings.Builder

	header := HeaderStyle.Render("Events")
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", max(1, width)))
	sb.WriteString("\n")

	if len(m.events) == 0 {
		sb.WriteString(MutedStyle.Render("Waiting for the first tick"))
		return sb.String()
	}

	visible := max(1, height-3)
	start := max(0, len(m.events)-visible)

	for _, ev := range m.events[start:] {
		tick := MutedStyle.Render(fmt.Sprintf("[t=%d]", ev.tick))
		style := lipgloss.NewStyle().Foreground(EventColor(ev.kind))
		text := style.Render(Truncate(ev.text, max(1, width-10)))
		sb.WriteString(fmt.Sprintf("%s %s\n", tick, text))
	}

	return sb.String()
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	var state string
	switch {
	case m.sch.Err() != nil:
		state = ErrorStyle.Render("stopped: " + m.sch.Err().Error())
	case m.finished:
		state = SuccessStyle.Render("finished")
	case m.playing:
		state = SuccessStyle.Render(fmt.Sprintf("playing (%s/tick)", m.delay))
	default:
		state = WarningStyle.Render("paused")
	}

	left := fmt.Sprintf("%s  tick %d  %d/%d executed",
		state, m.sch.Clock(), len(m.sch.Trace()), m.sch.Total())
	right := HelpStyle.Render("[space] play/pause  [n] step  [r] restart  [?] help  [q] quit")

	// Pad to fill width
	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return StatusBarStyle.Width(m.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	var sb strings.Builder

	title := TitleStyle.Width(m.width).Render("Heapsched Watch - Help")
	sb.WriteString(title)
	sb.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []string
	}{
		{
			title: "Playback",
			keys: []string{
				"space            Play / pause",
				"n                Single step (while paused)",
				"+ / -            Faster / slower",
				"r                Restart from tick zero",
			},
		},
		{
			title: "General",
			keys: []string{
				"?                Toggle help",
				"q / Ctrl+C       Quit",
			},
		},
	}

	for _, section := range sections {
		sb.WriteString(HeaderStyle.Render(section.title))
		sb.WriteString("\n")
		for _, k := range section.keys {
			sb.WriteString("  " + k + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(HelpStyle.Render("Press ? to close help"))

	return sb.String()
}
