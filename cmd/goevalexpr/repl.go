package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/sandrolain/goevalexpr"
	"github.com/sandrolain/goevalexpr/pkg/configuration"
	"github.com/sandrolain/goevalexpr/pkg/types"
)

// ReplCmd starts an interactive read-eval-print loop. Lines of the form
// "name = expression" bind variables in the session configuration.
type ReplCmd struct {
	Builtins bool `help:"Preload the builtin function set." default:"true" negatable:""`
}

const replPrompt = "➜ "

// Styles.
var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Run executes the repl command.
func (r *ReplCmd) Run() error {
	cfg := configuration.NewHashMap()
	if r.Builtins {
		cfg = configuration.Builtins()
	}

	p := tea.NewProgram(newReplModel(cfg))
	_, err := p.Run()
	return err
}

// replModel is the Bubble Tea model for the REPL.
type replModel struct {
	input      textinput.Model
	cfg        *configuration.HashMap
	history    []string
	historyIdx int
	quitting   bool
}

func newReplModel(cfg *configuration.HashMap) replModel {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(replPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 80

	return replModel{
		input: ti,
		cfg:   cfg,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "ctrl+d":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.history = append(m.history, line)
			m.historyIdx = len(m.history)
			echo := promptStyle.Render(replPrompt) + line
			return m, tea.Println(echo + "\n" + m.evalLine(line))

		case "up":
			if m.historyIdx > 0 {
				m.historyIdx--
				m.input.SetValue(m.history[m.historyIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.historyIdx < len(m.history)-1 {
				m.historyIdx++
				m.input.SetValue(m.history[m.historyIdx])
				m.input.CursorEnd()
			} else {
				m.historyIdx = len(m.history)
				m.input.SetValue("")
			}
			return m, nil

		case "tab":
			m.completeWord()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m replModel) View() string {
	if m.quitting {
		return ""
	}
	return m.input.View() + "\n" +
		hintStyle.Render("Tab completes names. Ctrl+D exits.") + "\n"
}

// evalLine evaluates one input line against the session configuration
// and returns the styled output.
func (m replModel) evalLine(line string) string {
	value, err := goevalexpr.EvalWithConfiguration(line, m.cfg)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	if value.Kind() == types.KindEmpty {
		return hintStyle.Render(value.String())
	}
	return resultStyle.Render(value.String())
}

// completeWord replaces the trailing identifier with its best fuzzy
// match among the configuration's variable and function names.
func (m *replModel) completeWord() {
	text := m.input.Value()
	start := strings.LastIndexFunc(text, func(r rune) bool {
		return !isIdentRune(r)
	}) + 1
	word := text[start:]
	if word == "" {
		return
	}

	candidates := append(m.cfg.VariableNames(), m.cfg.FunctionNames()...)
	matches := fuzzy.Find(word, candidates)
	if len(matches) == 0 {
		return
	}

	m.input.SetValue(text[:start] + matches[0].Str)
	m.input.CursorEnd()
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
