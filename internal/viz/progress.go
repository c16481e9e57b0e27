package viz

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/cylsum/internal/validate"
)

type progressMsg validate.Progress

type doneMsg struct {
	result *validate.EnsembleResult
	err    error
}

// ProgressModel runs an ensemble in the background and shows how far each
// seed has got through its checks.
type ProgressModel struct {
	ensemble *validate.Ensemble
	ctx      context.Context
	cancel   context.CancelFunc
	updates  chan validate.Progress

	stages map[int64]map[string]validate.Progress
	result *validate.EnsembleResult
	err    error
	done   bool
}

func NewProgressModel(cfg validate.Config, runs int, opts ...validate.Option) ProgressModel {
	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan validate.Progress, 64)

	send := validate.WithProgress(func(p validate.Progress) {
		select {
		case updates <- p:
		case <-ctx.Done():
		}
	})

	return ProgressModel{
		ensemble: validate.NewEnsemble(cfg, runs, append(opts, send)...),
		ctx:      ctx,
		cancel:   cancel,
		updates:  updates,
		stages:   make(map[int64]map[string]validate.Progress),
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return tea.Batch(m.start(), m.wait())
}

func (m ProgressModel) start() tea.Cmd {
	return func() tea.Msg {
		res, err := m.ensemble.Run(m.ctx)
		close(m.updates)
		return doneMsg{result: res, err: err}
	}
}

func (m ProgressModel) wait() tea.Cmd {
	return func() tea.Msg {
		p, ok := <-m.updates
		if !ok {
			return nil
		}
		return progressMsg(p)
	}
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			m.err = context.Canceled
			m.done = true
			return m, tea.Quit
		}
	case progressMsg:
		p := validate.Progress(msg)
		if m.stages[p.Seed] == nil {
			m.stages[p.Seed] = make(map[string]validate.Progress)
		}
		m.stages[p.Seed][p.Stage] = p
		return m, m.wait()
	case doneMsg:
		m.cancel()
		m.result, m.err = msg.result, msg.err
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	var sb strings.Builder
	sb.WriteString(Title.Render("validating"))
	sb.WriteString("\n\n")

	seeds := make([]int64, 0, len(m.stages))
	for s := range m.stages {
		seeds = append(seeds, s)
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i] < seeds[j] })

	for _, seed := range seeds {
		fmt.Fprintf(&sb, "%s ", MetricLabel.Render(fmt.Sprintf("seed %d", seed)))
		for _, stage := range []string{validate.CheckSummation, validate.CheckCorollary} {
			p, ok := m.stages[seed][stage]
			frac := 0.0
			if ok && p.Total > 0 {
				frac = float64(p.Done) / float64(p.Total)
			}
			fmt.Fprintf(&sb, " %s %s", Subtle.Render(stage[:3]), ProgressBar(frac, 20))
		}
		sb.WriteString("\n")
	}

	switch {
	case m.done && m.err != nil:
		sb.WriteString("\n" + StatusFail.Render(m.err.Error()) + "\n")
	case m.done:
		sb.WriteString("\n" + StatusPass.Render("done") + "\n")
	default:
		sb.WriteString("\n" + KeyHint.Render("q to abort") + "\n")
	}
	return sb.String()
}

// Result returns the ensemble outcome once the program has finished.
func (m ProgressModel) Result() (*validate.EnsembleResult, error) {
	if !m.done {
		return nil, fmt.Errorf("viz: validation still running")
	}
	return m.result, m.err
}
