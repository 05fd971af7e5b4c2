// cmd/prompt.go
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arun477/dirtree/internal/config"
)

type promptStep int

const (
	stepAPIKey promptStep = iota
	stepModelChoice
	stepCustomModel
	stepPromptDone
)

var (
	stylePromptTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("73"))
	stylePromptDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	stylePromptWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
)

type credsModel struct {
	step         promptStep
	keyInput     textinput.Model
	modelInput   textinput.Model
	defaultModel string

	apiKey    string
	model     string
	cancelled bool
}

// resolveCredentials returns the API key and model to use for the batch.
// The key comes from OPENAI_API_KEY when set; otherwise it is prompted for
// with masked input. The model prompt offers the configured default and an
// empty custom entry falls back to it silently.
func resolveCredentials(defaultModel string) (apiKey, model string, err error) {
	if defaultModel == "" {
		defaultModel = config.DefaultModel
	}

	keyInput := textinput.New()
	keyInput.Placeholder = "sk-..."
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '•'
	keyInput.CharLimit = 256
	keyInput.Width = 50

	modelInput := textinput.New()
	modelInput.Placeholder = defaultModel
	modelInput.CharLimit = 64
	modelInput.Width = 50

	m := &credsModel{
		keyInput:     keyInput,
		modelInput:   modelInput,
		defaultModel: defaultModel,
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		m.apiKey = key
		m.step = stepModelChoice
	} else {
		m.step = stepAPIKey
		m.keyInput.Focus()
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return "", "", err
	}

	final, ok := result.(*credsModel)
	if !ok || final.cancelled {
		return "", "", errors.New("summarization cancelled")
	}
	if final.apiKey == "" {
		return "", "", errors.New("no API key provided")
	}

	model = final.model
	if model == "" {
		model = defaultModel
	}
	fmt.Printf("Using model: %s for all API calls\n", model)

	return final.apiKey, model, nil
}

func (m *credsModel) Init() tea.Cmd {
	if m.step == stepAPIKey {
		return textinput.Blink
	}
	return nil
}

func (m *credsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}

		switch m.step {
		case stepAPIKey:
			if key == "enter" {
				if strings.TrimSpace(m.keyInput.Value()) != "" {
					m.apiKey = strings.TrimSpace(m.keyInput.Value())
					m.step = stepModelChoice
				}
				return m, nil
			}
			if key == "esc" {
				m.cancelled = true
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.keyInput, cmd = m.keyInput.Update(msg)
			return m, cmd

		case stepModelChoice:
			switch key {
			case "y", "Y", "enter":
				m.model = m.defaultModel
				m.step = stepPromptDone
				return m, tea.Quit
			case "n", "N":
				m.step = stepCustomModel
				m.modelInput.Focus()
				return m, textinput.Blink
			case "esc":
				m.cancelled = true
				return m, tea.Quit
			}

		case stepCustomModel:
			if key == "enter" {
				// Empty input falls back to the default silently.
				m.model = strings.TrimSpace(m.modelInput.Value())
				m.step = stepPromptDone
				return m, tea.Quit
			}
			if key == "esc" {
				m.step = stepModelChoice
				return m, nil
			}
			var cmd tea.Cmd
			m.modelInput, cmd = m.modelInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *credsModel) View() string {
	var b strings.Builder

	switch m.step {
	case stepAPIKey:
		b.WriteString(stylePromptTitle.Render("API key required"))
		b.WriteString("\n\n")
		b.WriteString("Enter your OpenAI API key ")
		b.WriteString(stylePromptDim.Render("(or set OPENAI_API_KEY)"))
		b.WriteString(":\n")
		b.WriteString(m.keyInput.View())
		b.WriteString("\n")
		b.WriteString(stylePromptDim.Render("Input is hidden. Esc to cancel."))
		b.WriteString("\n")

	case stepModelChoice:
		b.WriteString(stylePromptTitle.Render("Model selection"))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "Use the default model (%s) for all API calls? ", m.defaultModel)
		b.WriteString(stylePromptDim.Render("[Y/n]"))
		b.WriteString("\n")

	case stepCustomModel:
		b.WriteString(stylePromptTitle.Render("Custom model"))
		b.WriteString("\n\n")
		b.WriteString("Enter the model to use:\n")
		b.WriteString(m.modelInput.View())
		b.WriteString("\n")
		b.WriteString(stylePromptWarn.Render("Leave empty to keep the default."))
		b.WriteString("\n")

	case stepPromptDone:
		// Final announcement is printed after the program exits.
	}

	return b.String()
}
