package tui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgen/internal/application/molgen"
	"github.com/turtacn/molgen/internal/config"
	"github.com/turtacn/molgen/internal/infrastructure/rendering"
	"github.com/turtacn/molgen/pkg/errors"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fakeRunner struct {
	mu      sync.Mutex
	display *Display
	forms   []molgen.FormInput
	err     error
	png     []byte
}

func (f *fakeRunner) Run(_ context.Context, form molgen.FormInput) (*molgen.GenerateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forms = append(f.forms, form)
	if f.err != nil {
		return nil, f.err
	}
	report := "Generated Molecule: " + form.BaseSMILES
	f.display.SetText(report)
	f.display.SetImage(f.png)
	return &molgen.GenerateResult{SMILES: form.BaseSMILES, Report: report}, nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func newModel(t *testing.T, runner *fakeRunner) Model {
	t.Helper()
	display := NewDisplay(t.TempDir(), nil)
	runner.display = display
	return New(context.Background(), runner, display, nil)
}

func TestModel_FormCollectsAllFields(t *testing.T) {
	m := newModel(t, &fakeRunner{})
	values := []string{"CCO", "O:0", "1.5", "0.2", "0.1", "3", "2"}
	for i, v := range values {
		m = typeText(t, m, v)
		if i < len(values)-1 {
			m, _ = update(t, m, key("tab"))
		}
	}

	form := m.Form()
	assert.Equal(t, "CCO", form.BaseSMILES)
	assert.Equal(t, "O:0", form.FunctionalGroups)
	assert.Equal(t, molgen.DesiredProperties{LogP: "1.5", Sigma: "0.2", Pi: "0.1", HBA: "3", HBD: "2"}, form.Desired)
}

func TestModel_FocusCycles(t *testing.T) {
	m := newModel(t, &fakeRunner{})
	assert.Equal(t, fieldBase, m.focus)

	m, _ = update(t, m, key("shift+tab"))
	assert.Equal(t, focusButton, m.focus)

	m, _ = update(t, m, key("tab"))
	assert.Equal(t, fieldBase, m.focus)

	m, _ = update(t, m, key("enter"))
	assert.Equal(t, fieldGroups, m.focus)
	assert.True(t, m.inputs[fieldGroups].Focused())
	assert.False(t, m.inputs[fieldBase].Focused())
}

func TestModel_GenerateShowsResult(t *testing.T) {
	runner := &fakeRunner{png: testPNG(t, 20, 20)}
	m := newModel(t, runner)
	m = typeText(t, m, "CCO")

	m, cmd := update(t, m, key("ctrl+g"))
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Contains(t, m.View(), busyLabel)

	// A second press while busy is ignored.
	_, again := update(t, m, key("ctrl+g"))
	assert.Nil(t, again)

	m, _ = update(t, m, cmd())
	assert.False(t, m.busy)
	assert.Contains(t, m.result.View(), "Generated Molecule: CCO")
	assert.NotEmpty(t, m.preview)
	assert.Len(t, runner.forms, 1)

	saved, err := os.ReadFile(filepath.Join(m.display.outputDir, PreviewFile))
	require.NoError(t, err)
	assert.Equal(t, runner.png, saved)
}

func TestModel_ButtonEnterGenerates(t *testing.T) {
	runner := &fakeRunner{png: testPNG(t, 4, 4)}
	m := newModel(t, runner)
	m, _ = update(t, m, key("shift+tab"))

	_, cmd := update(t, m, key("enter"))
	require.NotNil(t, cmd)
	_, ok := cmd().(generatedMsg)
	assert.True(t, ok)
}

func TestModel_ErrorDialogKeepsPreviousResult(t *testing.T) {
	runner := &fakeRunner{png: testPNG(t, 8, 8)}
	m := newModel(t, runner)
	m = typeText(t, m, "CCO")
	m, cmd := update(t, m, key("ctrl+g"))
	m, _ = update(t, m, cmd())
	before := m.result.View()
	preview := m.preview

	runner.err = errors.New(errors.ErrCodeFunctionalGroupAttach, "failed to add functional group O at index 9").
		WithDetail("molecule has 3 atoms")
	m, cmd = update(t, m, key("ctrl+g"))
	m, _ = update(t, m, cmd())

	require.NotEmpty(t, m.dialog)
	view := m.View()
	assert.Contains(t, view, "failed to add functional group O at index 9")
	assert.Contains(t, view, "molecule has 3 atoms")

	// Typing is blocked while the dialog is open.
	m = typeText(t, m, "x")
	assert.Equal(t, "CCO", m.inputs[fieldBase].Value())

	m, _ = update(t, m, key("esc"))
	assert.Empty(t, m.dialog)
	assert.Equal(t, before, m.result.View())
	assert.Equal(t, preview, m.preview)
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, &fakeRunner{})
	_, cmd := update(t, m, key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_WindowSizeCentersDialog(t *testing.T) {
	m := newModel(t, &fakeRunner{err: errors.New(errors.ErrCodeMoleculeInvalidSMILES, "invalid base structure")})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, cmd := update(t, m, key("ctrl+g"))
	m, _ = update(t, m, cmd())

	lines := strings.Split(m.View(), "\n")
	assert.Len(t, lines, 40)
}

func TestRenderPreview(t *testing.T) {
	out, err := RenderPreview(testPNG(t, 40, 20), 20, 20)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	// 40x20 scaled to fit 20 columns keeps the 2:1 aspect: 20x10 pixels.
	assert.Len(t, lines, 5)
	assert.Equal(t, 20*5, strings.Count(out, upperHalfBlock))
}

func TestRenderPreview_Errors(t *testing.T) {
	_, err := RenderPreview([]byte("not a png"), 10, 10)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeRenderFailed))

	_, err = RenderPreview(testPNG(t, 2, 2), 0, 10)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestRenderPreview_RealDepiction(t *testing.T) {
	r, err := rendering.NewPNGRenderer(config.RenderConfig{}, nil)
	require.NoError(t, err)
	b := molgen.NewBuilder(nil)
	m, err := b.Build("c1ccccc1", nil)
	require.NoError(t, err)
	img, err := r.Render(m)
	require.NoError(t, err)

	out, err := RenderPreview(img, previewCols, previewRows)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(strings.Split(out, "\n")), previewRows)
}

func TestDisplay_NoOutputDir(t *testing.T) {
	d := NewDisplay("", nil)
	d.SetText("hello")
	d.SetImage([]byte{1, 2, 3})
	text, img := d.Snapshot()
	assert.Equal(t, "hello", text)
	assert.Equal(t, []byte{1, 2, 3}, img)
}

//Personal.AI order the ending
