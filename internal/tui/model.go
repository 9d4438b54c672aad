package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/TheDeepDelve/cubeviz"
)

// maxFrameGap caps the time advanced by one tick after the program was suspended.
const maxFrameGap = 250 * time.Millisecond

// Config holds the player settings.
type Config struct {
	FrameInterval  time.Duration
	ScrambleLength int
	SolverTimeout  time.Duration
}

// Model is the Bubble Tea model of the cube player.
type Model struct {
	session        *cubeviz.Session
	solver         cubeviz.Solver
	config         Config
	keys           KeyMap
	help           help.Model
	progress       progress.Model
	logger         *log.Logger
	scrambleLength int
	lastTick       time.Time
	notice         string
	width          int
	quitting       bool
}

// solveResultMsg carries a finished solver call back into the update loop.
type solveResultMsg struct {
	req cubeviz.SolveRequest
	sol cubeviz.Solution
	err error
}

// NewModel creates a player for session. solver answers solve requests.
func NewModel(session *cubeviz.Session, solver cubeviz.Solver, cfg Config, logger *log.Logger) Model {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = time.Second / 60
	}
	if cfg.ScrambleLength == 0 {
		cfg.ScrambleLength = cubeviz.DefaultScrambleLength
	}
	if cfg.SolverTimeout <= 0 {
		cfg.SolverTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		session:        session,
		solver:         solver,
		config:         cfg,
		keys:           DefaultKeyMap(),
		help:           h,
		progress:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		logger:         logger.WithPrefix("player"),
		scrambleLength: cfg.ScrambleLength,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FrameInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case solveResultMsg:
		m.session.CompleteSolve(msg.req, msg.sol, msg.err)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Longer):
		if m.scrambleLength < cubeviz.MaxScrambleLength {
			m.scrambleLength++
		}

	case key.Matches(msg, m.keys.Shorter):
		if m.scrambleLength > cubeviz.MinScrambleLength {
			m.scrambleLength--
		}

	case key.Matches(msg, m.keys.Scramble):
		m.reject(m.session.Scramble(m.scrambleLength))

	case key.Matches(msg, m.keys.Solve):
		return m.startSolve()

	case key.Matches(msg, m.keys.AnimateMach):
		m.reject(m.session.Animate(cubeviz.MethodKociemba))

	case key.Matches(msg, m.keys.AnimateHuman):
		m.reject(m.session.Animate(cubeviz.MethodHumanHybrid))

	case key.Matches(msg, m.keys.Reset):
		m.reject(m.session.Reset())
	}

	return m, nil
}

// startSolve asks the solver for every method that has no request in flight.
func (m Model) startSolve() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, method := range cubeviz.Methods {
		req, err := m.session.BeginSolve(method)
		if err != nil {
			if errors.Is(err, cubeviz.ErrRequestInFlight) {
				continue
			}
			m.reject(err)
			break
		}
		cmds = append(cmds, m.solveCmd(req))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) solveCmd(req cubeviz.SolveRequest) tea.Cmd {
	solver, timeout := m.solver, m.config.SolverTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		sol, err := solver.Solve(ctx, req.Scramble, req.Method)
		return solveResultMsg{req: req, sol: sol, err: err}
	}
}

// handleTick advances the session by the time since the previous frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.config.FrameInterval
	if !m.lastTick.IsZero() {
		dt = min(now.Sub(m.lastTick), maxFrameGap)
	}
	m.lastTick = now
	m.session.Tick(dt)
	return m, tickCmd(m.config.FrameInterval)
}

// reject records why a key press had no effect. The session status is left alone.
func (m *Model) reject(err error) {
	if err == nil {
		return
	}
	m.logger.Debug("action rejected", "err", err)
	m.notice = noticeFor(err)
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, cubeviz.ErrBusy):
		return "Wait for the current animation to finish."
	case errors.Is(err, cubeviz.ErrFollowUpPending):
		return "A solution is about to play."
	case errors.Is(err, cubeviz.ErrNoScramble):
		return "Scramble the cube first."
	case errors.Is(err, cubeviz.ErrNoSolution):
		return "Solve the cube first."
	case errors.Is(err, cubeviz.ErrInvalidLength):
		return "Scramble length must be between 1 and 50."
	default:
		return err.Error()
	}
}

// Run starts the Bubble Tea program with the given model.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
