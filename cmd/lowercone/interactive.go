package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/chirotope/config"
	"github.com/wippyai/chirotope/enumerate"
)

const maxBarWidth = 72

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type progressMsg enumerate.Progress

type doneMsg struct {
	res jobResult
	err error
}

type progressModel struct {
	bar     progress.Model
	title   string
	current enumerate.Progress
	started time.Time
	res     jobResult
	err     error
	done    bool
	cancel  context.CancelFunc
}

func newProgressModel(cfg *config.Config, index int, cancel context.CancelFunc) *progressModel {
	return &progressModel{
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		title:   fmt.Sprintf("rank %d on %d elements, representative %d", cfg.Rank, cfg.Elements, index),
		current: enumerate.Progress{Bases: cfg.Bases()},
		started: time.Now(),
		cancel:  cancel,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return nil
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-4, maxBarWidth)

	case progressMsg:
		m.current = enumerate.Progress(msg)

	case doneMsg:
		m.done = true
		m.res = msg.res
		m.err = msg.err
		if msg.err == nil {
			m.current.Checked = msg.res.Stats.Checked
			m.current.Accepted = msg.res.Stats.Accepted
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *progressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lower cone"))
	b.WriteString(" ")
	b.WriteString(m.title)
	b.WriteString("\n\n")

	frac := m.current.Fraction()
	if m.done && m.err == nil {
		frac = 1
	}
	b.WriteString(m.bar.ViewAs(frac))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("checked %s  accepted %s  elapsed %s\n\n",
		countStyle.Render(fmt.Sprint(m.current.Checked)),
		countStyle.Render(fmt.Sprint(m.current.Accepted)),
		time.Since(m.started).Round(time.Second)))

	switch {
	case m.done && m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.done && m.res.Skipped:
		b.WriteString(errorStyle.Render(tooLarge))
	case m.done:
		b.WriteString(resultStyle.Render("wrote " + m.res.Output))
	default:
		b.WriteString(helpStyle.Render("q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// runInteractive runs the job next to a progress view. Quitting the view
// cancels the job.
func (a *app) runInteractive(ctx context.Context, index int, opts jobOptions) error {
	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(a.cfg, index, cancel))

	// The view owns the terminal while it runs.
	opts.log = zap.NewNop()
	opts.onProgress = func(pr enumerate.Progress) { p.Send(progressMsg(pr)) }

	var res jobResult
	var g errgroup.Group
	g.Go(func() error {
		var err error
		res, err = runJob(jobCtx, a.cfg, index, opts)
		p.Send(doneMsg{res: res, err: err})
		return err
	})
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	a.report(res)
	return nil
}
