package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"planloop/internal/engine"
)

type boardModel struct {
	store *engine.Store

	width  int
	height int

	state engine.State
	stats engine.Stats

	selected int

	lastLog string
	loading bool
}

type loadedMsg struct {
	state engine.State
	stats engine.Stats
}

type completedMsg struct {
	res *engine.CompleteResult
	ok  bool
}

func newBoardModel(store *engine.Store) boardModel {
	return boardModel{
		store:   store,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{state: m.store.Snapshot(), stats: m.store.Stats()}
	}
}

func (m boardModel) completeCmd(id string, pure bool) tea.Cmd {
	return func() tea.Msg {
		it, ok := m.store.PlanItem(id)
		if !ok {
			return completedMsg{ok: false}
		}
		tq := engine.TimeNotPure
		if pure {
			tq = engine.TimePure
		}
		// Completing from the board assumes the estimate was the actual time;
		// the CLI `done` command takes the real duration.
		res, ok := m.store.CompletePlanItem(id, it.EstimatedMinutes, tq)
		return completedMsg{res: res, ok: ok}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.state = msg.state
		m.stats = msg.stats
		if m.selected >= len(m.state.CurrentDay.PlanItems) {
			m.selected = len(m.state.CurrentDay.PlanItems) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if !msg.ok {
			m.lastLog = "Item not found."
			return m, m.loadCmd()
		}
		m.lastLog = fmt.Sprintf("Completed: +%d XP (level %d → %d)", msg.res.XPAwarded, msg.res.LevelBefore, msg.res.LevelAfter)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.state.CurrentDay.PlanItems)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "p":
			it, ok := m.selectedItem()
			if !ok {
				m.lastLog = "Nothing to complete."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %q…", it.Description)
			return m, m.completeCmd(it.ID, msg.String() == "p")
		case "d":
			it, ok := m.selectedItem()
			if !ok {
				m.lastLog = "Nothing to drop."
				return m, nil
			}
			m.store.RemovePlanItem(it.ID)
			m.lastLog = fmt.Sprintf("Dropped %q.", it.Description)
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m boardModel) selectedItem() (engine.Item, bool) {
	plan := m.state.CurrentDay.PlanItems
	if m.selected < 0 || m.selected >= len(plan) {
		return engine.Item{}, false
	}
	return plan[m.selected], true
}

func (m boardModel) View() string {
	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.loading {
		return "Planloop — loading…"
	}
	st := m.stats
	floor := engine.PreviousLevelThreshold(st.CurrentLevel)
	bar := progressBar(st.CurrentXP-floor, st.NextLevelXP-floor, 30)
	return fmt.Sprintf("Planloop | %s | Level %d | XP %d %s | Streak %d",
		m.state.CurrentDay.ID, st.CurrentLevel, st.CurrentXP, bar, st.Streak)
}

func (m boardModel) renderSidebar() string {
	st := m.stats
	lines := []string{"Today"}
	lines = append(lines, fmt.Sprintf("- XP: %d (best %d)", st.TodayXP, st.BestDayXP))
	lines = append(lines, fmt.Sprintf("- Minutes: %d (best %d)", st.TodayMinutes, st.BestMinutes))
	lines = append(lines, fmt.Sprintf("- Pure: %d (best %d)", st.TodayPureMinutes, st.BestPureMinutes))
	lines = append(lines, fmt.Sprintf("- Adherence: %d%%", st.PlanAdherence))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- p: complete (pure)")
	lines = append(lines, "- d: drop")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Plan")
	plan := m.state.CurrentDay.PlanItems
	if len(plan) == 0 {
		out = append(out, "(empty)")
	}
	for i, it := range plan {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		pre := ""
		if it.WasPrePlanned {
			pre = " [pre]"
		}
		out = append(out, fmt.Sprintf("%s#%d-%s: %s (est %dm)%s", cursor, it.Priority, it.Quality, it.Description, int(it.EstimatedMinutes), pre))
	}
	out = append(out, "")
	out = append(out, "Fact")
	facts := m.state.CurrentDay.FactItems
	if len(facts) == 0 {
		out = append(out, "(empty)")
	}
	for _, it := range facts {
		dur := 0
		if it.ActualDuration != nil {
			dur = int(*it.ActualDuration)
		}
		out = append(out, fmt.Sprintf("  %s (%dm, %s) +%d XP", it.Description, dur, it.TimeQuality, it.XPValue))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
