package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/catalog"
	"github.com/jwebster45206/dungeon-engine/pkg/state"
)

const PlaceHolderText = "Type a command, or /help..."

// ConsoleUI is the BubbleTea model that runs the game in-process.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	session  *state.Session
	catalog  *catalog.Catalog
	provider string
	snap     *state.Snapshot

	logViewport   viewport.Model
	partyViewport viewport.Model
	textarea      textarea.Model
	ready         bool
	width         int
	height        int
	loading       bool

	// notice is shown under the log until the next command.
	notice      string
	noticeIsErr bool

	showQuitModal bool
	progressTick  int
}

type intentDoneMsg struct {
	err error
}

type progressTickMsg struct{}

var titleCaser = cases.Title(language.English)

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	partyPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narrativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	systemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // teal
	combatStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208")) // orange
	gainStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))  // green
	lossStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
	victoryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)

	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // yellow
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // dark grey
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func logStyle(kind state.LogKind) lipgloss.Style {
	switch kind {
	case state.LogSystem:
		return systemStyle
	case state.LogCombat:
		return combatStyle
	case state.LogGain:
		return gainStyle
	case state.LogLoss:
		return lossStyle
	case state.LogVictory:
		return victoryStyle
	}
	return narrativeStyle
}

func NewConsoleUI(session *state.Session, cat *catalog.Catalog, provider string) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 300
	ta.SetWidth(50)
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	return ConsoleUI{
		session:       session,
		catalog:       cat,
		provider:      provider,
		snap:          session.Snapshot(),
		textarea:      ta,
		logViewport:   logVp,
		partyViewport: viewport.New(20, 20),
	}
}

// phaseLabel renders a phase like "boss_combat" as "Boss Combat".
func phaseLabel(p state.Phase) string {
	return titleCaser.String(strings.ReplaceAll(string(p), "_", " "))
}

// phaseHint tells the player what the current phase expects.
func phaseHint(snap *state.Snapshot) string {
	switch snap.Phase {
	case state.PhaseModeSelect:
		return "Choose a mode: mode solo, or mode multi."
	case state.PhasePlayerCount:
		return "How many adventurers? party 2, 3 or 4."
	case state.PhaseCreation:
		return fmt.Sprintf("Create adventurer %d: create <name> <3 positive>,<3 negative traits>.", snap.CreationSlot)
	case state.PhaseExploration:
		if snap.Vote != nil && !snap.Vote.Resolved {
			return fmt.Sprintf("%s votes: vote explore|rest|analyze|boss.", snap.Vote.CurrentVoter())
		}
		return "explore, rest, analyze or boss. The shop is open: buy <item>."
	case state.PhaseEventChoice:
		return "A decision awaits: choose <id>."
	case state.PhaseBossCombat:
		return "fight, or flee."
	case state.PhaseBossEventResolve:
		return "React to the enemy's move: choose <id>."
	case state.PhaseGameOver:
		return "The party has fallen. /copy the log, or /quit."
	case state.PhaseVictory:
		return "The dungeon is conquered. /copy the log, or /quit."
	}
	return ""
}

// writeLog renders the adventure log for the current viewport width.
func (m *ConsoleUI) writeLog() {
	width := max(m.logViewport.Width-6, 20)

	var content strings.Builder
	content.WriteString(titleStyle.Render("DUNGEON ENGINE") + "\n")
	content.WriteString(promptStyle.Render("Oracle: "+m.provider) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	if m.phaseIs(state.PhaseCreation) {
		content.WriteString(m.traitList(width) + "\n")
	}

	for _, e := range m.snap.Log {
		content.WriteString(logStyle(e.Kind).Render(wordwrap.String(e.Text, width)) + "\n\n")
	}

	if m.loading {
		content.WriteString(loadingStyle.Render("The System is thinking...") + "\n")
		content.WriteString(m.renderProgressBar() + "\n")
	} else if m.notice != "" {
		style := promptStyle
		if m.noticeIsErr {
			style = errorStyle
		}
		content.WriteString(style.Render(wordwrap.String(m.notice, width)) + "\n\n")
	} else if hint := phaseHint(m.snap); hint != "" {
		content.WriteString(promptStyle.Render(hint) + "\n")
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

func (m *ConsoleUI) phaseIs(p state.Phase) bool {
	return m.snap != nil && m.snap.Phase == p
}

func (m *ConsoleUI) traitList(width int) string {
	var b strings.Builder
	for _, pol := range []actor.Polarity{actor.PolarityPositive, actor.PolarityNegative} {
		b.WriteString(labelStyle.Render(titleCaser.String(strings.ToLower(string(pol)))+" traits") + "\n")
		for _, t := range m.catalog.TraitsByPolarity(pol) {
			b.WriteString(wordwrap.String(fmt.Sprintf("  %-10s %s", t.ID, t.Description), width) + "\n")
		}
	}
	return b.String()
}

// writeParty renders the sidebar: phase, party and whatever is pending.
func (m *ConsoleUI) writeParty() {
	snap := m.snap
	var b strings.Builder

	b.WriteString(titleStyle.Render("PARTY") + "\n\n")
	b.WriteString(labelStyle.Render("Phase: ") + phaseLabel(snap.Phase) + "\n")
	b.WriteString(labelStyle.Render("Floor: ") + fmt.Sprintf("%d/%d", snap.Floor, state.FinalFloor) + "\n")
	if snap.Mode != "" {
		b.WriteString(labelStyle.Render("Mode:  ") + titleCaser.String(strings.ToLower(string(snap.Mode))) + "\n")
	}
	b.WriteString("\n")

	for _, p := range snap.Players {
		name := p.Name
		if p.HP <= 0 {
			name += " (down)"
		}
		b.WriteString(labelStyle.Render(name) + fmt.Sprintf("  Lv %d\n", p.Level))
		b.WriteString(fmt.Sprintf("HP %d/%d  MP %d/%d\n", p.HP, p.MaxHP, p.MP, p.MaxMP))
		b.WriteString(fmt.Sprintf("XP %d/%d  %d G\n", p.CurrentXP, p.MaxXP, p.Gold))
		if p.StatPoints > 0 {
			b.WriteString(gainStyle.Render(fmt.Sprintf("%d stat points\n", p.StatPoints)))
		}
		b.WriteString("\n")
	}

	if enc := snap.Encounter; enc != nil && snap.Phase.InDungeon() {
		b.WriteString(lossStyle.Render(enc.Name) + fmt.Sprintf("\nHP %d/%d\n\n", enc.HP, enc.MaxHP))
	}
	if len(snap.Dilemma) > 0 {
		b.WriteString(labelStyle.Render("Choices") + "\n")
		for _, c := range snap.Dilemma {
			b.WriteString(fmt.Sprintf("[%s] %s (%s)\n", c.ID, c.Text, strings.ToLower(string(c.RiskLevel))))
		}
		b.WriteString("\n")
	}
	if ev := snap.BossEvent; ev != nil {
		b.WriteString(labelStyle.Render(ev.Title) + "\n")
		for _, o := range ev.Options {
			b.WriteString(fmt.Sprintf("[%s] %s\n", o.ID, o.Text))
		}
		b.WriteString("\n")
	}

	b.WriteString(promptStyle.Render("Ctrl+C quit  /help"))
	m.partyViewport.SetContent(b.String())
}

// partyDetail lists inventory, gear, traits and companions for /party.
func partyDetail(snap *state.Snapshot) string {
	if len(snap.Players) == 0 {
		return "No adventurers yet."
	}
	var b strings.Builder
	for _, p := range snap.Players {
		fmt.Fprintf(&b, "%s: STR %d  RES %d  PER %d  INT %d\n", p.Name,
			p.Stats.Strength, p.Stats.Resistance, p.Stats.Perception, p.Stats.Intelligence)
		for _, slot := range []actor.Slot{actor.SlotMainHand, actor.SlotArmor, actor.SlotAccessory} {
			if it := p.Equipment.Get(slot); it != nil {
				fmt.Fprintf(&b, "  %s: %s\n", slot, it.Name)
			}
		}
		for _, it := range p.Inventory {
			if it.Count() > 1 {
				fmt.Fprintf(&b, "  - %s x%d [%s]\n", it.Name, it.Count(), it.ID)
			} else {
				fmt.Fprintf(&b, "  - %s [%s]\n", it.Name, it.ID)
			}
		}
		for i, c := range p.Companions {
			fmt.Fprintf(&b, "  companion %d: %s, %s (power %d)\n", i+1, c.Name, c.Role, c.Power)
		}
		if len(p.Skills) > 0 {
			fmt.Fprintf(&b, "  skills: %s\n", strings.Join(p.Skills, ", "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// plainLog is the adventure log without styling, for the clipboard.
func plainLog(snap *state.Snapshot) string {
	lines := make([]string, 0, len(snap.Log))
	for _, e := range snap.Log {
		lines = append(lines, e.Text)
	}
	return strings.Join(lines, "\n\n")
}

func (m *ConsoleUI) refresh() {
	m.snap = m.session.Snapshot()
	m.writeLog()
	m.writeParty()
}

func (m *ConsoleUI) resize() {
	logWidth := int(float64(m.width)*0.7) - 4
	partyWidth := m.width - logWidth - 6
	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - 6
	m.partyViewport.Width = partyWidth - 2
	m.partyViewport.Height = m.height - 3
	m.textarea.SetWidth(logWidth - 4)
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			return m.handleInput(input)
		}

	case intentDoneMsg:
		m.loading = false
		m.notice, m.noticeIsErr = "", false
		if msg.err != nil {
			m.notice, m.noticeIsErr = msg.err.Error(), true
		}
		m.refresh()
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeLog()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m ConsoleUI) handleInput(input string) (tea.Model, tea.Cmd) {
	cmd, err := parseCommand(input, m.snap)
	if err != nil {
		m.notice, m.noticeIsErr = err.Error(), true
		m.writeLog()
		return m, nil
	}

	m.notice, m.noticeIsErr = "", false
	switch cmd.meta {
	case metaHelp:
		m.notice = helpText
	case metaParty:
		m.notice = partyDetail(m.snap)
	case metaCopy:
		if err := clipboard.WriteAll(plainLog(m.snap)); err != nil {
			m.notice, m.noticeIsErr = "Could not copy: "+err.Error(), true
		} else {
			m.notice = fmt.Sprintf("Copied %d log entries to the clipboard.", len(m.snap.Log))
		}
	case metaQuit:
		m.showQuitModal = true
		return m, nil
	}
	if cmd.meta != "" {
		m.writeLog()
		return m, nil
	}

	m.loading = true
	m.progressTick = 0
	m.writeLog()
	return m, tea.Batch(m.dispatch(*cmd.intent), progressTick())
}

// dispatch runs an intent off the UI goroutine; oracle calls can take a while.
func (m ConsoleUI) dispatch(intent state.Intent) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return intentDoneMsg{err: session.Dispatch(context.Background(), intent)}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case intentDoneMsg:
		// Keep the result for when the modal closes.
		m.loading = false
		if msg.err != nil {
			m.notice, m.noticeIsErr = msg.err.Error(), true
		}
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Your adventure is not saved. Quit anyway?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.7) - 4
	partyWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			separatorStyle.Render(strings.Repeat("─", max(logWidth-4, 1))),
			m.textarea.View(),
		),
	)
	partyPanel := partyPanelStyle.Width(partyWidth).Height(m.height - 2).Render(m.partyViewport.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, partyPanel)
}

// renderProgressBar creates an animated progress bar while the oracle works
func (m ConsoleUI) renderProgressBar() string {
	usable := min(max(m.logViewport.Width-6, 10), 60)

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := range usable {
		switch {
		case i < filled:
			bar.WriteString("█")
		case i == filled && frame%4 < 2:
			bar.WriteString("▓")
		default:
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
