package tui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/mathsolve/internal/config"
	apperrors "github.com/agbru/mathsolve/internal/errors"
	"github.com/agbru/mathsolve/internal/metrics"
	"github.com/agbru/mathsolve/internal/orchestration"
	"github.com/agbru/mathsolve/internal/sysmon"
)

// Solver answers one query.
type Solver interface {
	Solve(ctx context.Context, query string, reporter orchestration.ProgressReporter, out io.Writer) (orchestration.Report, error)
}

// QueryState holds the execution-related fields of a TUI session.
type QueryState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	running    bool
	lastQuery  string
	exitCode   int
}

// LayoutManager splits the terminal between the panels.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-inputHeight-footerHeight, minBodyHeight)
}

// providersWidth returns the width allocated to the providers panel.
func (l LayoutManager) providersWidth() int {
	return max(l.width*ProvidersPanelWidthPercent/100, minProvidersWidth)
}

// answersWidth returns the width allocated to the answers panel.
func (l LayoutManager) answersWidth() int {
	return max(l.width-l.providersWidth(), 0)
}

const (
	headerHeight               = 1
	inputHeight                = 1
	footerHeight               = 2
	minBodyHeight              = 6
	minProvidersWidth          = 28
	ProvidersPanelWidthPercent = 35

	// SampleInterval is the period of the footer's resource sampling.
	SampleInterval = time.Second
	maxQueryLength = 1000
)

// Model is the dashboard: a query prompt over a providers panel and an
// answers panel, with a header and a resource footer.
type Model struct {
	header    HeaderModel
	input     textinput.Model
	providers ProvidersModel
	answers   AnswersModel
	footer    FooterModel
	spinner   spinner.Model

	keymap KeyMap

	QueryState
	LayoutManager

	parentCtx context.Context
	solver    Solver
	config    config.AppConfig
	ref       *programRef
	collector *metrics.MemoryCollector
}

// autoSubmitMsg solves the query given on the command line at startup.
type autoSubmitMsg struct{}

// contextDoneMsg is sent when the parent context is canceled.
type contextDoneMsg struct{}

// NewModel builds the dashboard. cfg.Query, when set, is solved on start.
func NewModel(parentCtx context.Context, solver Solver, providerNames []string, cfg config.AppConfig, version string) Model {
	ti := textinput.New()
	ti.Prompt = "math> "
	ti.PromptStyle = promptStyle
	ti.Placeholder = "solve x^2 - 4 = 0"
	ti.CharLimit = maxQueryLength
	ti.SetValue(cfg.Query)
	ti.Focus()

	km := DefaultKeyMap()
	return Model{
		header:    NewHeaderModel(version),
		input:     ti,
		providers: NewProvidersModel(providerNames),
		answers:   NewAnswersModel(),
		footer:    NewFooterModel(km),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusRunningStyle)),
		keymap:    km,
		QueryState: QueryState{
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		solver:    solver,
		config:    cfg,
		ref:       &programRef{},
		collector: metrics.NewMemoryCollector(),
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tickCmd(), watchContextCmd(m.parentCtx)}
	if strings.TrimSpace(m.config.Query) != "" {
		cmds = append(cmds, func() tea.Msg { return autoSubmitMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update routes a message to the panel it concerns.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if qm, ok := msg.(queryMsg); ok && qm.queryGeneration() != m.generation {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layoutPanels()
		return m, nil
	case autoSubmitMsg:
		return m.submit(m.input.Value())

	case ProviderDoneMsg:
		m.providers.Complete(msg.Update)
		return m, nil
	case AnswersMsg:
		m.providers.SetResults(msg.Results)
		return m, nil
	case BestAnswerMsg:
		m.answers.SetResult(msg.Result)
		return m, nil
	case ErrorMsg:
		m.answers.SetError(msg.Err)
		return m, nil
	case QueryDoneMsg:
		m.finish(msg.ExitCode)
		m.answers.SetFallback(msg.Fallback)
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		return m, tea.Batch(sampleStatsCmd(m.parentCtx, m.collector), tickCmd())

	case StatsMsg:
		m.footer.Record(msg)
		return m, nil

	case contextDoneMsg:
		m.stop()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.stop()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Submit):
		query := m.input.Value()
		m.input.Reset()
		return m.submit(query)

	case key.Matches(msg, m.keymap.Cancel):
		if m.running {
			m.stop()
			// Messages still in flight belong to the canceled query.
			m.generation++
			m.exitCode = apperrors.ExitErrorCanceled
			m.footer.SetStatus(statusCanceled)
		}
		return m, nil

	case key.Matches(msg, m.keymap.Rerun):
		if m.lastQuery == "" {
			return m, nil
		}
		return m.submit(m.lastQuery)

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.answers.Update(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts a new query, canceling the one in flight. A blank query is
// rejected without reaching the providers.
func (m Model) submit(query string) (tea.Model, tea.Cmd) {
	query = strings.TrimSpace(query)
	if query == "" {
		m.answers.SetError(apperrors.ErrEmptyQuery)
		m.footer.SetStatus(statusError)
		m.exitCode = apperrors.ExitErrorConfig
		return m, nil
	}

	m.stop()
	m.generation++
	if m.config.Timeout > 0 {
		m.ctx, m.cancel = context.WithTimeout(m.parentCtx, m.config.Timeout)
	} else {
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
	}
	m.running = true
	m.lastQuery = query

	m.header.Start()
	m.providers.Begin()
	m.answers.Clear()
	m.footer.SetStatus(statusRunning)

	return m, tea.Batch(
		startQueryCmd(m.ref, m.ctx, m.solver, query, m.generation),
		m.spinner.Tick,
	)
}

// stop cancels the running query, if any.
func (m *Model) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.running {
		m.running = false
		m.header.SetDone()
	}
}

func (m *Model) finish(exitCode int) {
	m.stop()
	m.exitCode = exitCode
	switch exitCode {
	case apperrors.ExitSuccess:
		m.footer.SetStatus(statusDone)
	case apperrors.ExitErrorNoAnswer:
		m.footer.SetStatus(statusNoAnswer)
	case apperrors.ExitErrorCanceled:
		m.footer.SetStatus(statusCanceled)
	default:
		m.footer.SetStatus(statusError)
	}
}

// ExitCode returns the exit code of the last query.
func (m Model) ExitCode() int { return m.exitCode }

// View lays the panels out for the current terminal size.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	providers := m.providers.View(m.spinner.View(), m.running)
	body := lipgloss.JoinHorizontal(lipgloss.Top, providers, m.answers.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		" "+m.input.View(),
		body,
		m.footer.View(),
	)
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.input.Width = max(m.width-len(m.input.Prompt)-3, 0)
	m.providers.SetSize(m.providersWidth(), m.bodyHeight())
	m.answers.SetSize(m.answersWidth(), m.bodyHeight())
}

// Run shows the dashboard until the user quits or ctx ends, and returns the
// exit code of the last query.
func Run(ctx context.Context, solver Solver, providerNames []string, cfg config.AppConfig, version string) int {
	initTUIStyles()

	model := NewModel(ctx, solver, providerNames, cfg, version)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	m, ok := final.(Model)
	if !ok {
		return apperrors.ExitSuccess
	}
	m.stop()
	return m.exitCode
}

// startQueryCmd solves query off the UI goroutine. Progress reaches the
// program through ref; the final message closes the query.
func startQueryCmd(ref *programRef, ctx context.Context, solver Solver, query string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{ref: ref, generation: gen}

		start := time.Now()
		report, err := solver.Solve(ctx, query, reporter, io.Discard)
		if err != nil {
			code := presenter.HandleError(err, time.Since(start), io.Discard)
			return QueryDoneMsg{ExitCode: code, Elapsed: time.Since(start), Generation: gen}
		}
		code := orchestration.AnalyzeResults(report, orchestration.PresentationOptions{}, presenter, io.Discard)
		return QueryDoneMsg{
			ExitCode:   code,
			Fallback:   report.Fallback,
			Elapsed:    report.Elapsed,
			Generation: gen,
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(SampleInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleStatsCmd reads process and system-wide usage.
func sampleStatsCmd(ctx context.Context, collector *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		return StatsMsg{
			Memory: collector.Snapshot(),
			System: sysmon.Sample(ctx),
		}
	}
}

// watchContextCmd waits for the parent context and ends the program.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return contextDoneMsg{}
	}
}
