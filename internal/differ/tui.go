// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Choice is one selectable revision in the picker.
type Choice struct {
	ID      string
	Label   string
	Objects int
	Created time.Time
}

// SelectRevisions lets the user pick two revisions interactively. It returns
// nil when the user quits without choosing. Picks come back in list order.
func SelectRevisions(items []Choice) ([]Choice, error) {
	p := tea.NewProgram(picker{items: items})
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("revision picker failed: %w", err)
	}
	return m.(picker).ordered(), nil
}

type picker struct {
	items    []Choice
	cursor   int
	selected []int
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.selected = nil
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		if i := m.position(m.cursor); i >= 0 {
			m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
		} else if len(m.selected) < 2 {
			m.selected = append(m.selected, m.cursor)
		}
	case "enter":
		if len(m.selected) == 2 {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m picker) View() string {
	var b strings.Builder
	b.WriteString("Select two revisions:\n\n")
	for i, c := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if m.position(i) >= 0 {
			mark = "x"
		}
		fmt.Fprintf(&b, "%s [%s] %4s %-20s %6d %s\n", cursor, mark, c.ID, c.Label, c.Objects,
			c.Created.Format("2006-01-02T15:04:05Z"))
	}
	b.WriteString("\nSPACE: toggle, ENTER: diff, Q/ESCAPE: quit\n")
	return b.String()
}

// position returns where item i sits in the selection, or -1.
func (m picker) position(i int) int {
	for p, s := range m.selected {
		if s == i {
			return p
		}
	}
	return -1
}

// ordered returns the two picks in list order, or nil.
func (m picker) ordered() []Choice {
	if len(m.selected) != 2 {
		return nil
	}
	a, b := m.selected[0], m.selected[1]
	if a > b {
		a, b = b, a
	}
	return []Choice{m.items[a], m.items[b]}
}
