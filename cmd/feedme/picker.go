package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"feedme/internal/domain/search"
)

var selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))

// pickResult is what a picker ended with: a candidate, or the typed text to create one from.
type pickResult[T any] struct {
	item   T
	picked bool
	text   string
}

// picker is an incremental search prompt over a search.Search.
type picker[T any] struct {
	title    string
	label    func(T) string
	search   *search.Search[T]
	result   *pickResult[T]
	quitting bool
}

func newPicker[T any](title string, label func(T) string, open func(search.Config[T]) *search.Search[T]) *picker[T] {
	p := &picker[T]{title: title, label: label}
	p.search = open(search.Config[T]{
		Autoselect: true,
		OnSelect: func(_ int, item T) {
			p.result = &pickResult[T]{item: item, picked: true}
		},
		OnNew: func(text string) {
			p.result = &pickResult[T]{text: strings.TrimSpace(text)}
		},
	})
	return p
}

func (p *picker[T]) Init() tea.Cmd { return nil }

func (p *picker[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		p.quitting = true
		return p, tea.Quit
	case tea.KeyUp, tea.KeyShiftTab:
		p.search.NavigateUp()
	case tea.KeyDown, tea.KeyTab:
		p.search.NavigateDown()
	case tea.KeyEnter:
		if _, selected := p.search.Selected(); !selected && strings.TrimSpace(p.search.Text()) == "" {
			return p, nil
		}
		if p.search.Commit() == search.CommitIgnored {
			return p, nil
		}
		return p, tea.Quit
	case tea.KeyBackspace:
		if text := []rune(p.search.Text()); len(text) > 0 {
			p.search.SetQuery(string(text[:len(text)-1]))
		}
	case tea.KeySpace:
		p.search.SetQuery(p.search.Text() + " ")
	case tea.KeyRunes:
		p.search.SetQuery(p.search.Text() + string(key.Runes))
	}
	return p, nil
}

func (p *picker[T]) View() string {
	if p.result != nil || p.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(p.title))
	b.WriteString("\n> " + p.search.Text() + "\n")

	selected, _ := p.search.Selected()
	for i, item := range p.search.Items() {
		if i == selected {
			b.WriteString(selectedStyle.Render("> "+p.label(item)) + "\n")
		} else {
			b.WriteString("  " + p.label(item) + "\n")
		}
	}
	if p.search.Len() == 0 && strings.TrimSpace(p.search.Text()) != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  enter creates %q", p.search.Text())) + "\n")
	}
	b.WriteString(mutedStyle.Render("up/down move, enter pick, esc cancel") + "\n")
	return b.String()
}

// runPicker runs p on the command's terminal. A nil result means the user cancelled.
func runPicker[T any](cmd *cobra.Command, p *picker[T]) (*pickResult[T], error) {
	prog := tea.NewProgram(p,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := prog.Run(); err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	return p.result, nil
}
