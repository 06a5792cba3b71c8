package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aman-CERP/anagrams/internal/output"
	"github.com/Aman-CERP/anagrams/pkg/anagram"
)

const (
	// maxHistory is the number of result lines kept on screen.
	maxHistory = 10

	menuOptions = 2
)

// BuildFunc builds the searcher the menu queries.
type BuildFunc func(ctx context.Context) (anagram.Searcher, error)

// Run builds the index behind a spinner and then shows the menu until the
// user exits. Build errors end the program and are returned.
func Run(ctx context.Context, cfg Config, build BuildFunc) error {
	m := newMenuModel(ctx, cfg, build)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("interactive session failed: %w", err)
	}
	if fm, ok := final.(*menuModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

type state int

const (
	stateBuilding state = iota
	stateMenu
	stateInput
	stateDone
)

type builtMsg struct {
	searcher anagram.Searcher
	err      error
}

// menuModel is the bubbletea model for the lookup menu.
type menuModel struct {
	ctx      context.Context
	build    BuildFunc
	folder   string
	state    state
	searcher anagram.Searcher
	cursor   int
	input    []rune
	history  []string
	notice   string
	err      error

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  Styles
	width   int
}

func newMenuModel(ctx context.Context, cfg Config, build BuildFunc) *menuModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime))

	styles := GetStyles(cfg.NoColor || DetectNoColor())
	if cfg.NoColor || DetectNoColor() {
		s.Style = lipgloss.NewStyle()
	}

	return &menuModel{
		ctx:     ctx,
		build:   build,
		folder:  cfg.Folder,
		state:   stateBuilding,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: s,
		styles:  styles,
		width:   80,
	}
}

// Init implements tea.Model.
func (m *menuModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.buildCmd())
}

func (m *menuModel) buildCmd() tea.Cmd {
	return func() tea.Msg {
		s, err := m.build(m.ctx)
		return builtMsg{searcher: s, err: err}
	}
}

// Update implements tea.Model.
func (m *menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case builtMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateDone
			return m, tea.Quit
		}
		m.searcher = msg.searcher
		m.state = stateMenu
		return m, nil

	case spinner.TickMsg:
		if m.state != stateBuilding {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.state = stateDone
			return m, tea.Quit
		}
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateInput:
			return m.updateInput(msg)
		}
	}

	return m, nil
}

func (m *menuModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor + menuOptions - 1) % menuOptions
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % menuOptions
	case key.Matches(msg, m.keys.Select):
		return m.choose(m.cursor)
	case key.Matches(msg, m.keys.Lookup):
		return m.choose(0)
	case key.Matches(msg, m.keys.Exit):
		return m.choose(1)
	default:
		m.notice = output.InvalidChoiceLine(msg.String())
	}
	return m, nil
}

func (m *menuModel) choose(option int) (tea.Model, tea.Cmd) {
	m.notice = ""
	if option == 1 {
		m.state = stateDone
		return m, tea.Quit
	}
	m.state = stateInput
	m.input = m.input[:0]
	return m, nil
}

func (m *menuModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = stateMenu
	case key.Matches(msg, m.keys.Submit):
		r := m.searcher.Find(string(m.input))
		m.history = append(m.history, output.ResultLine(r))
		if len(m.history) > maxHistory {
			m.history = m.history[len(m.history)-maxHistory:]
		}
		m.state = stateMenu
	case msg.Type == tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case msg.Type == tea.KeySpace:
		m.input = append(m.input, ' ')
	case msg.Type == tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

// View implements tea.Model.
func (m *menuModel) View() string {
	switch m.state {
	case stateBuilding:
		return fmt.Sprintf("%s %s\n", m.spinner.View(), output.BuildingLine(m.folder))
	case stateDone:
		// leave the results on the terminal after exit
		if len(m.history) == 0 {
			return ""
		}
		return strings.Join(m.history, "\n") + "\n"
	}

	var sections []string
	sections = append(sections, m.styles.Header.Render(output.ReadyLine()))
	if m.folder != "" {
		sections = append(sections, m.styles.Label.Render(m.folder))
	}

	if len(m.history) > 0 {
		sections = append(sections, "", m.renderHistory())
	}

	sections = append(sections, "")
	if m.state == stateInput {
		sections = append(sections, m.renderInput(), "", m.help.ShortHelpView(m.keys.inputHelp()))
	} else {
		sections = append(sections, m.renderMenu())
		if m.notice != "" {
			sections = append(sections, m.styles.Warning.Render(m.notice))
		}
		sections = append(sections, "", m.help.View(m.keys))
	}

	return strings.Join(sections, "\n") + "\n"
}

func (m *menuModel) renderHistory() string {
	lines := make([]string, len(m.history))
	for i, l := range m.history {
		style := m.styles.Success
		if i < len(m.history)-1 {
			style = m.styles.Label
		}
		lines[i] = style.Render(l)
	}
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return m.styles.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *menuModel) renderMenu() string {
	options := []string{
		"[" + output.ChoiceLookup + "] Look up a word",
		"[" + output.ChoiceExit + "] Exit",
	}
	lines := make([]string, len(options))
	for i, opt := range options {
		if i == m.cursor {
			lines[i] = m.styles.Cursor.Render("› ") + m.styles.Active.Render(opt)
		} else {
			lines[i] = "  " + opt
		}
	}
	return strings.Join(lines, "\n")
}

func (m *menuModel) renderInput() string {
	return m.styles.Label.Render(output.WordPrompt) + string(m.input) + m.styles.Cursor.Render("█")
}
