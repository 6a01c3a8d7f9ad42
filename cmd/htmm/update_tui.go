package main

import (
	"context"
	"fmt"

	"htmm/internal/core"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// applyMsg reports progress from the background update worker.
type applyMsg struct {
	kind string // "start", "success", "error", "done"
	name string
	err  error
}

// applyState is shared between the model copies bubbletea makes, so the
// final error survives Run().
type applyState struct {
	firstErr error
}

// applyModel drives the UI while updates download and install.
type applyModel struct {
	spinner      spinner.Model
	progressChan chan applyMsg
	service      *core.Service
	updates      []core.AvailableUpdate
	state        *applyState

	current   string
	completed []string
	failed    []string
	done      bool
}

func newApplyModel(service *core.Service, updates []core.AvailableUpdate) applyModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return applyModel{
		spinner:      s,
		progressChan: make(chan applyMsg, 16),
		service:      service,
		updates:      updates,
		state:        &applyState{},
		completed:    []string{},
		failed:       []string{},
	}
}

// err returns the first failure seen while applying, if any.
func (m applyModel) err() error {
	return m.state.firstErr
}

func (m applyModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.startApply(),
		m.waitForActivity(),
	)
}

func (m applyModel) startApply() tea.Cmd {
	return func() tea.Msg {
		go func() {
			defer close(m.progressChan)
			ctx := context.Background()
			for _, upd := range m.updates {
				m.progressChan <- applyMsg{kind: "start", name: upd.Record.Name}
				if _, err := m.service.Updater().ApplyOne(ctx, upd.Record.ID, upd.File, nil); err != nil {
					m.progressChan <- applyMsg{kind: "error", name: upd.Record.Name, err: err}
					return
				}
				m.progressChan <- applyMsg{kind: "success", name: upd.Record.Name}
			}
		}()
		return nil
	}
}

func (m applyModel) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.progressChan
		if !ok {
			return applyMsg{kind: "done"}
		}
		return msg
	}
}

func (m applyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.done {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case applyMsg:
		switch msg.kind {
		case "done":
			m.done = true
			return m, tea.Quit

		case "start":
			m.current = msg.name

		case "success":
			m.current = ""
			m.completed = append(m.completed, msg.name)

		case "error":
			m.current = ""
			m.failed = append(m.failed, fmt.Sprintf("%s: %v", msg.name, msg.err))
			if m.state.firstErr == nil {
				m.state.firstErr = fmt.Errorf("updating %q: %w", msg.name, msg.err)
			}
		}
		return m, m.waitForActivity()
	}

	return m, nil
}

func (m applyModel) View() string {
	var symbol, status string
	if m.done {
		if len(m.failed) > 0 {
			symbol = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("✗")
			status = "Finished with errors"
		} else {
			symbol = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓")
			status = fmt.Sprintf("Updated %d mod(s)", len(m.completed))
		}
	} else {
		symbol = m.spinner.View()
		status = fmt.Sprintf("Updating %d mod(s)...", len(m.updates))
		if m.current != "" {
			status = fmt.Sprintf("Updating %s...", m.current)
		}
	}

	s := fmt.Sprintf("\n %s %s\n\n", symbol, status)

	if len(m.completed) > 0 {
		s += lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("Completed:") + "\n"
		for _, name := range m.completed {
			s += fmt.Sprintf("  • %s\n", name)
		}
		s += "\n"
	}

	if len(m.failed) > 0 {
		s += lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("Errors:") + "\n"
		for _, e := range m.failed {
			s += fmt.Sprintf("  • %s\n", e)
		}
		s += "\n"
	}

	return s
}
