// cmd/init.go
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/arun477/dirtree/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up dirtree config interactively",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

type initStep int

const (
	stepWelcome   initStep = iota
	stepOverwrite          // only if config exists
	stepModel
	stepDelay
	stepDone
)

var (
	styleInitTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("73"))
	styleInitSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("71"))
	styleInitWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	styleInitDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

type initModel struct {
	step         initStep
	input        textinput.Model
	model        string
	delay        float64
	warning      string
	configPath   string
	configExists bool
	err          error
	cancelled    bool
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := cfgFile
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	_, err := os.Stat(configPath)
	configExists := err == nil

	ti := textinput.New()
	ti.Placeholder = config.DefaultModel
	ti.CharLimit = 64
	ti.Width = 50

	m := &initModel{
		step:         stepWelcome,
		input:        ti,
		delay:        5.0,
		configPath:   configPath,
		configExists: configExists,
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return err
	}

	if final, ok := result.(*initModel); ok && final.err != nil {
		return final.err
	}

	return nil
}

func (m *initModel) Init() tea.Cmd {
	return nil
}

func (m *initModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()

		// Global quit
		if key == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}

		switch m.step {
		case stepWelcome:
			if key == "enter" {
				if m.configExists {
					m.step = stepOverwrite
				} else {
					m.step = stepModel
					m.input.Focus()
					return m, textinput.Blink
				}
			}
			if key == "q" || key == "esc" {
				m.cancelled = true
				return m, tea.Quit
			}

		case stepOverwrite:
			if key == "y" || key == "Y" {
				m.step = stepModel
				m.input.Focus()
				return m, textinput.Blink
			}
			m.cancelled = true
			return m, tea.Quit

		case stepModel:
			if key == "enter" {
				m.model = strings.TrimSpace(m.input.Value())
				if m.model == "" {
					m.model = config.DefaultModel
				}
				m.step = stepDelay
				m.input.Reset()
				m.input.Placeholder = "5.0"
				return m, nil
			}
			if key == "esc" {
				m.cancelled = true
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case stepDelay:
			if key == "enter" {
				val := strings.TrimSpace(m.input.Value())
				if val != "" {
					delay, err := strconv.ParseFloat(val, 64)
					if err != nil || delay < 0 {
						m.warning = fmt.Sprintf("  %q is not a valid delay", val)
						m.input.Reset()
						return m, nil
					}
					m.delay = delay
				}
				cfg := config.NewConfig()
				cfg.Model = m.model
				cfg.BatchDelay = m.delay
				if err := config.Save(cfg, m.configPath); err != nil {
					m.err = err
				}
				m.step = stepDone
				return m, tea.Quit
			}
			if key == "esc" {
				m.step = stepModel
				m.input.Reset()
				m.input.Placeholder = config.DefaultModel
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case stepDone:
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *initModel) View() string {
	var b strings.Builder

	switch m.step {
	case stepWelcome:
		b.WriteString(styleInitTitle.Render("Welcome to dirtree!"))
		b.WriteString("\n\n")
		b.WriteString("Config will be saved to ")
		b.WriteString(styleInitDim.Render(m.configPath))
		b.WriteString("\n\n")
		b.WriteString(styleInitDim.Render("Press Enter to continue, Esc to cancel"))
		b.WriteString("\n")

	case stepOverwrite:
		b.WriteString(styleInitWarn.Render("Config already exists"))
		b.WriteString(" at ")
		b.WriteString(styleInitDim.Render(m.configPath))
		b.WriteString("\n\n")
		b.WriteString("Overwrite? ")
		b.WriteString(styleInitDim.Render("[y/N]"))
		b.WriteString("\n")

	case stepModel:
		b.WriteString(styleInitTitle.Render("Summarization model"))
		b.WriteString("\n\n")
		b.WriteString("Enter the model to use for summaries (or press Enter for the default):\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")

	case stepDelay:
		b.WriteString(styleInitTitle.Render("Batch delay"))
		b.WriteString("\n\n")
		b.WriteString("Seconds to pause between API calls (or press Enter for 5.0):\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.warning != "" {
			b.WriteString(styleInitWarn.Render(m.warning))
			b.WriteString("\n")
		}

	case stepDone:
		if m.err != nil {
			b.WriteString(styleInitWarn.Render("Error: " + m.err.Error()))
			b.WriteString("\n")
		} else {
			b.WriteString(styleInitSuccess.Render("Config saved to " + m.configPath))
			b.WriteString("\n\n")
			b.WriteString("Run ")
			b.WriteString(styleInitTitle.Render("dirtree --llm-context"))
			b.WriteString(" to generate a tree and summaries!\n")
		}
	}

	return b.String()
}
