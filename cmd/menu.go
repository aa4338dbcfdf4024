// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pulsar-tools/pulsarctl/internal/mouse"
	"github.com/pulsar-tools/pulsarctl/pkg/pulsar"
)

// Focus states
const (
	focusMenu = iota
	focusPrompt
	focusResult
)

// promptStep is one input field of a menu entry.
type promptStep struct {
	label       string
	placeholder string
}

// menuEntry is one selectable action. Entries without steps run
// immediately; entries with steps walk the user through their prompts
// first.
type menuEntry struct {
	name  string
	desc  string
	steps []promptStep
	run   func(m *mouse.Mouse, answers []string) (string, error)
}

// Implement list.Item interface
func (e menuEntry) Title() string       { return e.name }
func (e menuEntry) Description() string { return e.desc }
func (e menuEntry) FilterValue() string { return e.name }

// menuModel is the Bubble Tea model for the interactive menu
type menuModel struct {
	mouse *mouse.Mouse

	entries list.Model
	input   textinput.Model

	focus   int
	current menuEntry
	stepIdx int
	answers []string

	result    string
	resultErr bool

	width    int
	height   int
	quitting bool
}

func menuEntries() []menuEntry {
	return []menuEntry{
		{
			name: "Set DPI",
			desc: "Sensor resolution for one stage",
			steps: []promptStep{
				{label: fmt.Sprintf("DPI (%d-%d)", pulsar.MinDPI, pulsar.MaxDPI), placeholder: "1600"},
				{label: "Stage (1-6, empty for the active stage)", placeholder: ""},
			},
			run: func(m *mouse.Mouse, answers []string) (string, error) {
				dpi, err := parseIntAnswer(answers[0], "DPI")
				if err != nil {
					return "", err
				}
				stage := 0
				if answers[1] != "" {
					if stage, err = parseIntAnswer(answers[1], "stage"); err != nil {
						return "", err
					}
				}
				return m.SetDPI(dpi, stage), nil
			},
		},
		{
			name:  "Set polling rate",
			desc:  "How often the mouse reports to the host",
			steps: []promptStep{{label: "Rate in Hz (125, 250, 500, 1000, 2000, 4000, 8000)", placeholder: "1000"}},
			run: func(m *mouse.Mouse, answers []string) (string, error) {
				rate, err := parseIntAnswer(answers[0], "polling rate")
				if err != nil {
					return "", err
				}
				return m.SetPollingRate(rate), nil
			},
		},
		{
			name:  "Set lift-off distance",
			desc:  "Height at which tracking stops",
			steps: []promptStep{{label: "Distance in mm (0.7, 1.0, 2.0)", placeholder: "1.0"}},
			run: func(m *mouse.Mouse, answers []string) (string, error) {
				distance, err := strconv.ParseFloat(strings.TrimSpace(answers[0]), 64)
				if err != nil {
					return "", fmt.Errorf("invalid distance %q", answers[0])
				}
				return m.SetLiftoffDistance(distance), nil
			},
		},
		{
			name: "Map a button",
			desc: "Bind a button to an action",
			steps: []promptStep{
				{label: "Button (1-5)", placeholder: "1"},
				{label: "Action (" + strings.Join(pulsar.ActionNames(), ", ") + ")", placeholder: "Left Click"},
			},
			run: func(m *mouse.Mouse, answers []string) (string, error) {
				button, err := parseIntAnswer(answers[0], "button")
				if err != nil {
					return "", err
				}
				return m.SetButtonMapping(button, strings.TrimSpace(answers[1]))
			},
		},
		{
			name:  "Motion sync",
			desc:  "Align sensor reads with USB polling",
			steps: []promptStep{{label: "Motion sync (on/off)", placeholder: "on"}},
			run: func(m *mouse.Mouse, answers []string) (string, error) {
				switch strings.ToLower(strings.TrimSpace(answers[0])) {
				case "on":
					return m.SetMotionSync(true), nil
				case "off":
					return m.SetMotionSync(false), nil
				}
				return "", fmt.Errorf("invalid value %q: use on or off", answers[0])
			},
		},
		{
			name: "Power saving",
			desc: "Idle sleep and low-battery behavior",
			steps: []promptStep{
				{label: fmt.Sprintf("Idle time in seconds (%d-%d)", pulsar.MinIdleTime, pulsar.MaxIdleTime), placeholder: "30"},
				{label: fmt.Sprintf("Low-battery threshold %% (%d-%d, empty to keep)", pulsar.MinBatteryThreshold, pulsar.MaxBatteryThreshold), placeholder: ""},
			},
			run: func(m *mouse.Mouse, answers []string) (string, error) {
				idle, err := parseIntAnswer(answers[0], "idle time")
				if err != nil {
					return "", err
				}
				var threshold *int
				if answers[1] != "" {
					t, err := parseIntAnswer(answers[1], "threshold")
					if err != nil {
						return "", err
					}
					threshold = &t
				}
				return m.SetPowerSaving(idle, threshold), nil
			},
		},
		{
			name: "Device info",
			desc: "Firmware and hardware report",
			run: func(m *mouse.Mouse, answers []string) (string, error) {
				return m.DeviceInfo()
			},
		},
		{
			name: "Current settings",
			desc: "Full snapshot of the active profile",
			run: func(m *mouse.Mouse, answers []string) (string, error) {
				return m.Settings(), nil
			},
		},
		{
			name:  "Save to device profile",
			desc:  "Store settings in an onboard slot",
			steps: []promptStep{{label: "Profile slot (1-4)", placeholder: "1"}},
			run: func(m *mouse.Mouse, answers []string) (string, error) {
				slot, err := parseIntAnswer(answers[0], "profile slot")
				if err != nil {
					return "", err
				}
				return m.SaveToProfile(slot)
			},
		},
	}
}

func parseIntAnswer(s, what string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return v, nil
}

func initialMenuModel(m *mouse.Mouse) menuModel {
	entries := menuEntries()
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = e
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.SetHeight(2)
	menu := list.New(items, delegate, 60, 30)
	menu.Title = "Pulsar X2"
	menu.SetShowStatusBar(false)
	menu.SetShowHelp(false)
	menu.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 32

	return menuModel{
		mouse:   m,
		entries: menu,
		input:   ti,
		focus:   focusMenu,
		width:   80,
		height:  24,
	}
}

func (m menuModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.entries.SetSize(msg.Width-4, msg.Height-6)
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusMenu:
		m.entries, cmd = m.entries.Update(msg)
	case focusPrompt:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m menuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.focus {
	case focusMenu:
		switch msg.String() {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			entry, ok := m.entries.SelectedItem().(menuEntry)
			if !ok {
				return m, nil
			}
			m.current = entry
			m.answers = nil
			m.stepIdx = 0
			if len(entry.steps) == 0 {
				m.finish()
				return m, nil
			}
			m.focus = focusPrompt
			m.startStep()
			return m, textinput.Blink
		}
		var cmd tea.Cmd
		m.entries, cmd = m.entries.Update(msg)
		return m, cmd

	case focusPrompt:
		switch msg.String() {
		case "esc":
			m.focus = focusMenu
			m.input.Blur()
			return m, nil
		case "enter":
			m.answers = append(m.answers, m.input.Value())
			m.stepIdx++
			if m.stepIdx < len(m.current.steps) {
				m.startStep()
				return m, textinput.Blink
			}
			m.input.Blur()
			m.finish()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case focusResult:
		m.focus = focusMenu
		return m, nil
	}

	return m, nil
}

// startStep resets the text input for the current prompt step.
func (m *menuModel) startStep() {
	step := m.current.steps[m.stepIdx]
	m.input.SetValue("")
	m.input.Placeholder = step.placeholder
	m.input.Focus()
}

// finish runs the selected entry against the facade and switches to the
// result view.
func (m *menuModel) finish() {
	out, err := m.current.run(m.mouse, m.answers)
	if err != nil {
		m.result = err.Error()
		m.resultErr = true
	} else {
		m.result = out
		m.resultErr = false
	}
	m.focus = focusResult
}

func (m menuModel) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString(titleStyle.Render("PULSARCTL - PULSAR X2 CONFIGURATOR"))
	s.WriteString("\n\n")

	switch m.focus {
	case focusMenu:
		s.WriteString(m.entries.View())
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("enter: select | q: quit"))

	case focusPrompt:
		s.WriteString(labelStyle.Render(m.current.name))
		s.WriteString("\n\n")
		s.WriteString(m.current.steps[m.stepIdx].label)
		s.WriteString("\n")
		s.WriteString(m.input.View())
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("enter: confirm | esc: back"))

	case focusResult:
		s.WriteString(labelStyle.Render(m.current.name))
		s.WriteString("\n\n")
		if m.resultErr {
			s.WriteString(boxStyle.Render(errorStyle.Render(m.result)))
		} else {
			s.WriteString(boxStyle.Render(m.result))
		}
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("any key: back to menu"))
	}

	return s.String()
}

// runMenu drives the interactive menu over an already-opened facade.
func runMenu(m *mouse.Mouse) error {
	p := tea.NewProgram(initialMenuModel(m))
	_, err := p.Run()
	return err
}
