// Package tui renders the Baku interaction state machine in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"bakuworry/internal/domain"
	"bakuworry/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	eventBuffer = 32
	barWidth    = 20

	signInNotice = "The Baku cannot sense you. Press ctrl+s to sign in."
)

// Identity is the anonymous identity lifecycle seen by the UI
type Identity interface {
	Start(ctx context.Context)
	SignIn(ctx context.Context) error
	Loading() bool
	Current() *domain.Credential
}

// Progress exposes XP and level-up events
type Progress interface {
	Progress() domain.Progress
	OnLevelUp(fn func(domain.LevelUp))
}

type transitionMsg domain.Transition

type levelUpMsg domain.LevelUp

type identityReadyMsg struct{}

type feedDoneMsg struct{ err error }

type signInMsg struct{ err error }

// Model is the bubbletea model for the Baku screen
type Model struct {
	ctx      context.Context
	machine  *session.Machine
	identity Identity
	progress Progress
	logger   *zap.Logger

	events  chan tea.Msg
	input   textinput.Model
	spinner spinner.Model
	styles  Styles

	ready   bool
	levelUp *domain.LevelUp
	notice  string
}

// New creates the model and subscribes it to machine and progress events
func New(ctx context.Context, machine *session.Machine, identity Identity, progress Progress, logger *zap.Logger) Model {
	events := make(chan tea.Msg, eventBuffer)

	machine.Subscribe(func(t domain.Transition) {
		events <- transitionMsg(t)
	})
	progress.OnLevelUp(func(e domain.LevelUp) {
		events <- levelUpMsg(e)
	})

	ti := textinput.New()
	ti.Placeholder = "What keeps you up at night?"
	ti.CharLimit = domain.ClientWorryLimit
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Moon

	return Model{
		ctx:      ctx,
		machine:  machine,
		identity: identity,
		progress: progress,
		logger:   logger,
		events:   events,
		input:    ti,
		spinner:  sp,
		styles:   DefaultStyles(),
	}
}

// Init starts identity restoration and the event pump
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.startIdentity(),
		m.waitForEvent(),
		m.spinner.Tick,
		textinput.Blink,
	)
}

func (m Model) startIdentity() tea.Cmd {
	return func() tea.Msg {
		m.identity.Start(m.ctx)
		return identityReadyMsg{}
	}
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) feed() tea.Cmd {
	return func() tea.Msg {
		return feedDoneMsg{err: m.machine.Feed(m.ctx)}
	}
}

func (m Model) signIn() tea.Cmd {
	return func() tea.Msg {
		return signInMsg{err: m.identity.SignIn(m.ctx)}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case identityReadyMsg:
		m.ready = true
		if m.identity.Current() == nil {
			m.notice = signInNotice
		}
		return m, nil

	case signInMsg:
		if msg.err != nil {
			m.logger.Error("Manual sign-in failed", zap.Error(msg.err))
			m.notice = "The Baku still cannot sense you. Try again later."
		} else {
			m.notice = ""
		}
		return m, nil

	case transitionMsg:
		if msg.To == domain.StateSleeping {
			m.input.SetValue(m.machine.Text())
		}
		return m, m.waitForEvent()

	case levelUpMsg:
		// One grant can cross several levels; the overlay shows the highest
		e := domain.LevelUp(msg)
		if m.levelUp == nil || e.Level > m.levelUp.Level {
			m.levelUp = &e
		}
		return m, m.waitForEvent()

	case feedDoneMsg:
		if msg.err != nil {
			m.logger.Warn("Feed ended early", zap.Error(msg.err))
		}
		m.input.SetValue(m.machine.Text())
		if m.identity.Current() == nil {
			m.notice = signInNotice
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	}

	if !m.ready {
		return m, nil
	}

	if m.levelUp != nil {
		if msg.String() == "enter" {
			m.levelUp = nil
		}
		return m, nil
	}

	if m.machine.ShowingOnboarding() {
		if msg.String() == "enter" || msg.String() == " " {
			m.machine.NextStep(m.ctx)
		}
		return m, nil
	}

	if msg.String() == "ctrl+s" && m.identity.Current() == nil {
		return m, m.signIn()
	}

	switch m.machine.State() {
	case domain.StateIdle:
		if msg.String() == "enter" {
			m.machine.Reset()
			m.input.SetValue("")
		}
		return m, nil
	case domain.StateEating, domain.StateProcessing:
		return m, nil
	}

	if msg.String() == "enter" {
		if m.machine.CanFeed() {
			return m, m.feed()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.machine.SetText(m.input.Value())
	return m, cmd
}

// View renders the current screen
func (m Model) View() string {
	var b strings.Builder

	switch {
	case !m.ready:
		b.WriteString(m.styles.Title.Render("The Baku stirs in the dark..."))
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
	case m.levelUp != nil:
		b.WriteString(m.styles.Overlay.Render(fmt.Sprintf(
			"LEVEL UP!\n\nThe Baku grows stronger.\nLevel %d", m.levelUp.Level)))
		b.WriteString(m.styles.Footer.Render("\nenter: continue"))
	case m.machine.ShowingOnboarding():
		m.viewOnboarding(&b)
	default:
		m.viewMain(&b)
	}

	return m.styles.App.Render(b.String())
}

func (m Model) viewOnboarding(b *strings.Builder) {
	step, idx := m.machine.OnboardingStep()

	b.WriteString(m.styles.Title.Render(step.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.Body.Render(step.Description))
	b.WriteString("\n\n")

	dots := make([]string, len(domain.OnboardingSteps))
	for i := range dots {
		if i == idx {
			dots[i] = m.styles.DotOn.Render("●")
		} else {
			dots[i] = m.styles.Dot.Render("○")
		}
	}
	b.WriteString(strings.Join(dots, " "))

	hint := "enter: next"
	if idx == len(domain.OnboardingSteps)-1 {
		hint = "enter: begin"
	}
	b.WriteString(m.styles.Footer.Render("\n" + hint))
}

func (m Model) viewMain(b *strings.Builder) {
	p := m.progress.Progress()
	b.WriteString(m.styles.Level.Render(fmt.Sprintf("Level %d", p.Level)))
	b.WriteString("  ")
	b.WriteString(m.xpBar(p))
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d XP", p.XP)))
	b.WriteString("\n\n")

	state := m.machine.State()
	b.WriteString(m.styles.Baku.Render(bakuFace(state)))
	b.WriteString("\n")

	switch state {
	case domain.StateEating:
		b.WriteString(m.styles.Body.Render("Nom nom nom..."))
	case domain.StateProcessing:
		b.WriteString(m.spinner.View() + " " + m.styles.Body.Render("Digesting..."))
	case domain.StateIdle:
		b.WriteString(m.styles.Response.Render(m.machine.Response()))
		b.WriteString(m.styles.Footer.Render("\nenter: feed another"))
	default:
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d/%d", len([]rune(m.input.Value())), domain.ClientWorryLimit)))
		hint := "enter: feed the Baku"
		if !m.machine.CanFeed() {
			hint = "type a worry"
		}
		b.WriteString(m.styles.Footer.Render("\n" + hint + "  esc: quit"))
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(m.notice))
	}
}

func (m Model) xpBar(p domain.Progress) string {
	filled := p.XPIntoLevel() * barWidth / domain.XPPerLevel
	return m.styles.Bar.Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
}

func bakuFace(state domain.BakuState) string {
	switch state {
	case domain.StateWaking:
		return "(o.o)  ...?"
	case domain.StateEating:
		return "(>O<)  *chomp*"
	case domain.StateProcessing:
		return "(-.-)  ~"
	case domain.StateIdle:
		return "(^.^)  mmm"
	default:
		return "(-.-)  zzz"
	}
}
