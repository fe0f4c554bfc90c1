// Package tui is the terminal shell around a triage session: it renders the
// current image and status, translates key presses into session commands,
// and runs the categorization pipeline for the results.
package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"pictriage/internal/config"
	"pictriage/internal/session"
	"pictriage/internal/triage"
	"pictriage/internal/watch"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// newImageMsg carries a path discovered by the intake watcher.
type newImageMsg string

// Model is the bubbletea model for one triage session.
type Model struct {
	cfg     *config.Config
	sess    *session.Session
	engine  *triage.Engine
	watcher *watch.Watcher

	input     textinput.Model
	prompting bool
	showHelp  bool

	statusMsg string
	warnMsg   string
	errMsg    string
	preview   string

	width  int
	height int
	done   bool
}

// New builds the model. watcher may be nil when live intake is disabled.
func New(cfg *config.Config, sess *session.Session, engine *triage.Engine, watcher *watch.Watcher) *Model {
	input := textinput.New()
	input.Placeholder = "custom name"
	input.CharLimit = 80

	m := &Model{
		cfg:      cfg,
		sess:     sess,
		engine:   engine,
		watcher:  watcher,
		input:    input,
		showHelp: true,
		width:    cfg.Settings.PreviewWidth,
		height:   24,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.watcher != nil {
		return m.waitForImage()
	}
	return nil
}

func (m *Model) waitForImage() tea.Cmd {
	return func() tea.Msg {
		path, ok := <-m.watcher.Paths()
		if !ok {
			return nil
		}
		return newImageMsg(path)
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
		return m, nil
	case newImageMsg:
		if m.sess.Append(string(msg)) {
			m.statusMsg = fmt.Sprintf("New image: %s", filepath.Base(string(msg)))
			if m.done {
				// The terminal state is only terminal until the watcher
				// finds more work.
				m.done = false
			}
			m.refresh()
		}
		return m, m.waitForImage()
	case tea.KeyMsg:
		if m.done {
			return m, tea.Quit
		}
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompting = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.prompting = false
		m.input.Blur()
		m.sess.SetCustomName(strings.TrimSpace(m.input.Value()))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	cmd, ok := session.KeyCommand(m.cfg, key)
	if !ok {
		return m, nil
	}

	m.errMsg = ""
	switch m.sess.Apply(cmd) {
	case session.EffectQuit:
		return m, tea.Quit
	case session.EffectRedisplay:
		m.refresh()
	case session.EffectPrompt:
		m.openPrompt()
	case session.EffectCategorize:
		m.categorize(cmd.Category)
	}
	return m, nil
}

func (m *Model) openPrompt() {
	current, _ := m.sess.CustomName()
	m.input.SetValue(current)
	m.input.Focus()
	m.prompting = true
}

// categorize runs the pipeline synchronously; the session stays single
// threaded and a modal failure leaves the worklist untouched.
func (m *Model) categorize(category string) {
	path, ok := m.sess.Current()
	if !ok {
		return
	}
	customName, _ := m.sess.CustomName()

	res, err := m.engine.Categorize(triage.Request{
		Path:       path,
		Category:   category,
		Rotation:   m.sess.Rotation(),
		CustomName: customName,
	})
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to categorize image: %v", err)
		return
	}

	m.sess.Complete()
	m.warnMsg = strings.Join(res.Warnings, "; ")
	m.statusMsg = fmt.Sprintf("%s -> %s", filepath.Base(path), res.DestPath)
	if m.sess.Done() {
		m.done = true
	}
	m.refresh()
}

// refresh re-renders the preview for the current item and rotation.
func (m *Model) refresh() {
	path, ok := m.sess.Current()
	if !ok {
		m.preview = ""
		return
	}
	maxW := m.width - 6
	if m.cfg.Settings.PreviewWidth > 0 && maxW > m.cfg.Settings.PreviewWidth {
		maxW = m.cfg.Settings.PreviewWidth
	}
	maxH := m.height - 10
	if maxH < 4 {
		maxH = 4
	}
	m.preview = renderPreview(path, m.sess.Rotation(), maxW, maxH)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return promptStyle.Render(
			statusStyle.Render("All images have been processed!") +
				"\n\nPress any key to exit.")
	}

	var sections []string
	sections = append(sections, titleStyle.Render("pictriage"))

	if path, ok := m.sess.Current(); ok {
		status := fmt.Sprintf("Image %d of %d: %s",
			m.sess.Cursor()+1, m.sess.Len(), filepath.Base(path))
		if r := m.sess.Rotation(); r != 0 {
			status += fmt.Sprintf("  (rotated %d°)", r)
		}
		sections = append(sections, statusStyle.Render(status))
		sections = append(sections, previewFrame.Render(m.preview))
		sections = append(sections, customNameStyle.Render(m.customNameLine()))
	}

	if m.statusMsg != "" {
		sections = append(sections, m.statusMsg)
	}
	if m.warnMsg != "" {
		sections = append(sections, warningStyle.Render(m.warnMsg))
	}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}

	if m.prompting {
		sections = append(sections, promptStyle.Render(
			"Enter a custom name to replace the sequence number:\n"+m.input.View()))
	} else if m.showHelp {
		sections = append(sections, helpStyle.Render(m.helpText()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) customNameLine() string {
	if name, ok := m.sess.CustomName(); ok {
		return fmt.Sprintf("Custom name: %s", name)
	}
	return "No custom name set (using sequence number)"
}

func (m *Model) helpText() string {
	kb := m.cfg.Keybinds
	lines := []string{
		"Controls:",
		fmt.Sprintf("%s = next image", kb[config.ActionNext]),
		fmt.Sprintf("%s = previous image", kb[config.ActionPrevious]),
		fmt.Sprintf("%s = quit", kb[config.ActionQuit]),
		"delete/backspace = move to deleted folder",
		fmt.Sprintf("%s = rotate image clockwise", kb[config.ActionRotateCW]),
		fmt.Sprintf("%s = rotate image anticlockwise", kb[config.ActionRotateCCW]),
		fmt.Sprintf("%s = set custom name (replaces sequence number)", kb[config.ActionCustomName]),
		"? = toggle help",
		"",
		"Categories:",
	}

	var categories []string
	for category := range m.cfg.Categories {
		if category != config.DeletedCategory {
			categories = append(categories, category)
		}
	}
	sort.Strings(categories)
	for _, category := range categories {
		display := strings.ReplaceAll(category, "/", " > ")
		lines = append(lines, fmt.Sprintf("%s = move to %s folder", m.cfg.Categories[category], display))
	}

	return strings.Join(lines, "\n")
}
