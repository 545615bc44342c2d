// Package session drives the single-screen Baku interaction: the
// onboarding gate and the sleeping, waking, eating, processing, idle cycle.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"bakuworry/internal/domain"
	"bakuworry/internal/service"

	"go.uber.org/zap"
)

// DefaultEatDelay is how long the Baku chews before the network call
const DefaultEatDelay = 1500 * time.Millisecond

var (
	ErrOnboardingPending = errors.New("onboarding not completed")
	ErrNothingToFeed     = errors.New("nothing to feed")
	ErrFeedInProgress    = errors.New("feed already in progress")
)

// Submitter sends a worry and returns the Baku's reply
type Submitter interface {
	Submit(ctx context.Context, text, botField string) (string, error)
}

// ProgressTracker grants XP
type ProgressTracker interface {
	AddXP(ctx context.Context, amount int) domain.Progress
}

// OnboardingGate owns the persisted onboarding flag
type OnboardingGate interface {
	HasSeen() bool
	Complete(ctx context.Context)
}

// Config tunes the feed cycle
type Config struct {
	EatDelay time.Duration
	Reward   int
}

// DefaultConfig returns the production feed settings
func DefaultConfig() Config {
	return Config{EatDelay: DefaultEatDelay, Reward: domain.FeedReward}
}

// Machine is the interaction state machine for one client session
type Machine struct {
	submitter  Submitter
	progress   ProgressTracker
	onboarding OnboardingGate
	cfg        Config
	logger     *zap.Logger

	mu        sync.Mutex
	state     domain.BakuState
	text      string
	botField  string
	response  string
	step      int
	listeners []func(domain.Transition)
}

// NewMachine creates a machine in the SLEEPING state
func NewMachine(submitter Submitter, progress ProgressTracker, onboarding OnboardingGate, cfg Config, logger *zap.Logger) *Machine {
	if cfg.Reward <= 0 {
		cfg.Reward = domain.FeedReward
	}
	return &Machine{
		submitter:  submitter,
		progress:   progress,
		onboarding: onboarding,
		cfg:        cfg,
		logger:     logger,
		state:      domain.StateSleeping,
	}
}

// Subscribe registers fn to receive every transition, in order
func (m *Machine) Subscribe(fn func(domain.Transition)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// State returns the current state
func (m *Machine) State() domain.BakuState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Text returns the current input text
func (m *Machine) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Response returns the displayed reply, empty when none
func (m *Machine) Response() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.response
}

// ShowingOnboarding reports whether the onboarding gate is closed
func (m *Machine) ShowingOnboarding() bool {
	return !m.onboarding.HasSeen()
}

// OnboardingStep returns the current step and its index
func (m *Machine) OnboardingStep() (domain.OnboardingStep, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.OnboardingSteps[m.step], m.step
}

// NextStep advances onboarding; the last step completes it.
// Returns true once onboarding is complete.
func (m *Machine) NextStep(ctx context.Context) bool {
	if m.onboarding.HasSeen() {
		return true
	}

	m.mu.Lock()
	if m.step < len(domain.OnboardingSteps)-1 {
		m.step++
		m.mu.Unlock()
		return false
	}
	m.mu.Unlock()

	m.onboarding.Complete(ctx)
	m.logger.Info("Onboarding completed")
	return true
}

// SetText updates the input, waking or sleeping the Baku.
// Input is ignored while a feed is in flight or a reply is shown.
func (m *Machine) SetText(text string) {
	if r := []rune(text); len(r) > domain.ClientWorryLimit {
		text = string(r[:domain.ClientWorryLimit])
	}

	m.mu.Lock()
	var next domain.BakuState
	switch m.state {
	case domain.StateSleeping:
		m.text = text
		if text != "" {
			next = domain.StateWaking
		}
	case domain.StateWaking:
		m.text = text
		if text == "" {
			next = domain.StateSleeping
		}
	}
	if next == "" {
		m.mu.Unlock()
		return
	}
	t, listeners := m.setStateLocked(next)
	m.mu.Unlock()

	m.notify(t, listeners)
}

// SetBotField sets the hidden honeypot field
func (m *Machine) SetBotField(value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.botField = value
}

// CanFeed reports whether the feed control is enabled
func (m *Machine) CanFeed() bool {
	if m.ShowingOnboarding() {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return canFeed(m.state, m.text)
}

func canFeed(state domain.BakuState, text string) bool {
	return (state == domain.StateSleeping || state == domain.StateWaking) && strings.TrimSpace(text) != ""
}

// Feed runs one full cycle and returns once the Baku is IDLE.
// Submission failures still end in IDLE with a fallback reply and grant no XP.
func (m *Machine) Feed(ctx context.Context) error {
	if m.ShowingOnboarding() {
		return ErrOnboardingPending
	}

	m.mu.Lock()
	switch {
	case m.state == domain.StateEating || m.state == domain.StateProcessing:
		m.mu.Unlock()
		return ErrFeedInProgress
	case !canFeed(m.state, m.text):
		m.mu.Unlock()
		return ErrNothingToFeed
	}
	text, botField := m.text, m.botField
	t, listeners := m.setStateLocked(domain.StateEating)
	m.mu.Unlock()

	m.notify(t, listeners)

	if err := sleep(ctx, m.cfg.EatDelay); err != nil {
		m.finish(domain.MessageFallback, false)
		return err
	}

	m.transition(domain.StateProcessing)

	reply, err := m.submitter.Submit(ctx, text, botField)
	if err != nil {
		m.logger.Error("Failed to feed Baku", zap.Error(err))
		m.finish(failureMessage(err), false)
		return nil
	}

	p := m.progress.AddXP(ctx, m.cfg.Reward)
	m.logger.Info("Worry eaten", zap.Int("xp", p.XP), zap.Int("level", p.Level))

	m.finish(reply, true)
	return nil
}

// Reset clears the reply and input and puts the Baku back to sleep
func (m *Machine) Reset() {
	m.mu.Lock()
	if m.state != domain.StateIdle {
		m.mu.Unlock()
		return
	}
	m.response = ""
	m.text = ""
	m.mu.Unlock()

	m.transition(domain.StateSleeping)
}

func (m *Machine) finish(reply string, clearInput bool) {
	m.mu.Lock()
	m.response = reply
	if clearInput {
		m.text = ""
	}
	m.mu.Unlock()

	m.transition(domain.StateIdle)
}

func (m *Machine) transition(to domain.BakuState) {
	m.mu.Lock()
	t, listeners := m.setStateLocked(to)
	m.mu.Unlock()

	m.notify(t, listeners)
}

// setStateLocked must be called with m.mu held
func (m *Machine) setStateLocked(to domain.BakuState) (domain.Transition, []func(domain.Transition)) {
	t := domain.Transition{From: m.state, To: to}
	m.state = to
	return t, append([]func(domain.Transition){}, m.listeners...)
}

func (m *Machine) notify(t domain.Transition, listeners []func(domain.Transition)) {
	m.logger.Debug("Baku state changed", zap.String("from", string(t.From)), zap.String("to", string(t.To)))
	for _, fn := range listeners {
		fn(t)
	}
}

func failureMessage(err error) string {
	var subErr *service.SubmissionError
	if errors.As(err, &subErr) && subErr.Message != "" {
		return subErr.Message
	}
	return domain.MessageFallback
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
