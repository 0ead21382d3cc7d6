package tui

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/turtacn/molgen/internal/application/molgen"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
)

// Runner handles one press of the Generate Molecule button. *molgen.Action
// implements it.
type Runner interface {
	Run(ctx context.Context, form molgen.FormInput) (*molgen.GenerateResult, error)
}

const (
	fieldBase = iota
	fieldGroups
	fieldLogP
	fieldSigma
	fieldPi
	fieldHBA
	fieldHBD
	fieldCount
)

// focusButton is the focus index of the Generate Molecule button.
const focusButton = fieldCount

var fieldLabels = [fieldCount]string{
	"Base SMILES:",
	"Functional Groups (SMILES:Index, separated by commas):",
	"Desired LogP:",
	"Desired Sigma:",
	"Desired Pi:",
	"Desired HBA:",
	"Desired HBD:",
}

const (
	resultWidth   = 56
	resultHeight  = 7
	previewCols   = 48
	previewRows   = 20
	buttonLabel   = "Generate Molecule"
	busyLabel     = "Generating..."
	dialogTitle   = "Error"
	dialogButtons = "enter / esc to dismiss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238"))
	focusedStyle = buttonStyle.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	dialogStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("160")).Padding(1, 2).Width(60)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type generatedMsg struct{ result *molgen.GenerateResult }

type failedMsg struct{ err error }

// Model is the bubbletea model of the generation window.
type Model struct {
	ctx     context.Context
	runner  Runner
	display *Display
	logger  logging.Logger

	inputs  [fieldCount]textinput.Model
	focus   int
	busy    bool
	dialog  string
	result  viewport.Model
	preview string

	width, height int
}

// New builds the window around runner, reading results back from display.
func New(ctx context.Context, runner Runner, display *Display, logger logging.Logger) Model {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	m := Model{
		ctx:     ctx,
		runner:  runner,
		display: display,
		logger:  logger,
		result:  viewport.New(resultWidth, resultHeight),
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Width = resultWidth - 4
		ti.CharLimit = 512
		m.inputs[i] = ti
	}
	m.inputs[fieldBase].Placeholder = "c1ccccc1"
	m.inputs[fieldGroups].Placeholder = "O:0,N:3"
	m.inputs[fieldBase].Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Form returns the current field contents.
func (m Model) Form() molgen.FormInput {
	return molgen.FormInput{
		BaseSMILES:       m.inputs[fieldBase].Value(),
		FunctionalGroups: m.inputs[fieldGroups].Value(),
		Desired: molgen.DesiredProperties{
			LogP:  m.inputs[fieldLogP].Value(),
			Sigma: m.inputs[fieldSigma].Value(),
			Pi:    m.inputs[fieldPi].Value(),
			HBA:   m.inputs[fieldHBA].Value(),
			HBD:   m.inputs[fieldHBD].Value(),
		},
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case generatedMsg:
		m.busy = false
		m.showResult()
		return m, nil

	case failedMsg:
		m.busy = false
		m.dialog = dialogText(msg.err)
		m.logger.Info("Generation failed", logging.Err(msg.err))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.dialog != "" {
			switch msg.String() {
			case "enter", "esc":
				m.dialog = ""
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+g":
			return m.submit()
		case "enter":
			if m.focus == focusButton {
				return m.submit()
			}
			return m, m.setFocus(m.focus + 1)
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % (fieldCount + 1))
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount) % (fieldCount + 1))
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.result, cmd = m.result.Update(msg)
			return m, cmd
		}
	}

	if m.focus < fieldCount {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setFocus(i int) tea.Cmd {
	if m.focus < fieldCount {
		m.inputs[m.focus].Blur()
	}
	m.focus = i
	if i < fieldCount {
		return m.inputs[i].Focus()
	}
	return nil
}

// submit starts a generation unless one is already running.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	ctx, runner, form := m.ctx, m.runner, m.Form()
	return m, func() tea.Msg {
		res, err := runner.Run(ctx, form)
		if err != nil {
			return failedMsg{err: err}
		}
		return generatedMsg{result: res}
	}
}

// showResult copies the display regions into the view.
func (m *Model) showResult() {
	text, img := m.display.Snapshot()
	m.result.SetContent(text)
	m.result.GotoTop()
	if len(img) == 0 {
		m.preview = ""
		return
	}
	preview, err := RenderPreview(img, previewCols, previewRows)
	if err != nil {
		m.logger.Warn("Failed to draw preview", logging.Err(err))
		m.preview = ""
		return
	}
	m.preview = preview
}

func dialogText(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		if appErr.Detail != "" {
			return appErr.Message + "\n" + appErr.Detail
		}
		return appErr.Message
	}
	return err.Error()
}

func (m Model) View() string {
	if m.dialog != "" {
		box := dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(dialogTitle), "", m.dialog, "", helpStyle.Render(dialogButtons)))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	}

	var form strings.Builder
	for i := range m.inputs {
		form.WriteString(labelStyle.Render(fieldLabels[i]))
		form.WriteByte('\n')
		form.WriteString(m.inputs[i].View())
		form.WriteByte('\n')
	}

	label, style := buttonLabel, buttonStyle
	if m.busy {
		label = busyLabel
	}
	if m.focus == focusButton {
		style = focusedStyle
	}

	output := panelStyle.Render(m.result.View())
	if m.preview != "" {
		output = lipgloss.JoinHorizontal(lipgloss.Top, output, panelStyle.Render(m.preview))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("MolGen"),
		"",
		form.String(),
		style.Render(label),
		"",
		output,
		helpStyle.Render("tab/shift+tab move  enter/ctrl+g generate  pgup/pgdown scroll  ctrl+c quit"),
	)
}

// Run opens the window and blocks until the user quits or ctx ends.
func Run(ctx context.Context, runner Runner, display *Display, logger logging.Logger) error {
	p := tea.NewProgram(New(ctx, runner, display, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

//Personal.AI order the ending
