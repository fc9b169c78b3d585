// Package tui implements the interactive category and preset editor. It
// renders the stores, lets the user retune the mapping, and triggers
// organize runs; all store mutations go through the store APIs so
// auto-save keeps working.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"clair/internal/category"
	"clair/internal/organize"
	"clair/internal/preset"
)

// Model is the bubbletea model for the editor.
type Model struct {
	cats    *category.Store
	presets *preset.Store
	engine  *organize.Engine

	dir  string
	opts organize.Options

	palette   []string // extension columns, from the store's known palette
	row       int      // selected category
	col       int      // selected extension column
	presetIdx int

	status    string
	statusErr bool
	keys      KeyMap
	help      help.Model
	quitting  bool
}

// New creates the editor model for a target directory.
func New(cats *category.Store, presets *preset.Store, engine *organize.Engine, dir string, opts organize.Options) *Model {
	return &Model{
		cats:    cats,
		presets: presets,
		engine:  engine,
		dir:     dir,
		opts:    opts,
		palette: cats.KnownExtensions(),
		// The live mapping comes from the categories file, not from any
		// preset, so no preset is active until the user picks one.
		presetIdx: -1,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.cats.Names()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}

	case key.Matches(msg, m.keys.Down):
		if m.row < len(names)-1 {
			m.row++
		}

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}

	case key.Matches(msg, m.keys.Right):
		if m.col < len(m.palette)-1 {
			m.col++
		}

	case key.Matches(msg, m.keys.Toggle):
		m.toggleCurrent(names)

	case key.Matches(msg, m.keys.NextPreset):
		m.cyclePreset()

	case key.Matches(msg, m.keys.Recursive):
		m.opts.Recursive = !m.opts.Recursive
		if !m.opts.Recursive {
			m.opts.DeleteEmpty = false
		}

	case key.Matches(msg, m.keys.DeleteEmpty):
		if m.opts.Recursive {
			m.opts.DeleteEmpty = !m.opts.DeleteEmpty
		} else {
			m.setStatus("delete empty needs subfolders enabled", true)
		}

	case key.Matches(msg, m.keys.DryRun):
		m.opts.DryRun = !m.opts.DryRun

	case key.Matches(msg, m.keys.Organize):
		m.runOrganize()
	}
	return m, nil
}

func (m *Model) toggleCurrent(names []string) {
	if m.row >= len(names) || m.col >= len(m.palette) {
		return
	}
	name := names[m.row]
	ext := m.palette[m.col]
	enabled := m.extensionEnabled(name, ext)
	if err := m.cats.SetExtensionEnabled(name, ext, !enabled); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if enabled {
		m.setStatus(fmt.Sprintf("removed %s from %s", ext, name), false)
	} else {
		m.setStatus(fmt.Sprintf("added %s to %s", ext, name), false)
	}
}

func (m *Model) cyclePreset() {
	names := m.presets.Names()
	if len(names) == 0 {
		return
	}
	m.presetIdx = (m.presetIdx + 1) % len(names)
	mapping, err := m.presets.Get(names[m.presetIdx])
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.cats.Restore(mapping)
	if m.row >= len(mapping) {
		m.row = 0
	}
	m.setStatus(fmt.Sprintf("loaded preset %q", names[m.presetIdx]), false)
}

func (m *Model) runOrganize() {
	report, err := m.engine.Organize(context.Background(), m.dir, m.opts)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus(report.Summary(), len(report.Errors) > 0)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m *Model) extensionEnabled(name, ext string) bool {
	for _, c := range m.cats.Categories() {
		if c.Name == name {
			return c.Contains(ext)
		}
	}
	return false
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Clair Organizer: "+m.dir) + "\n")

	presetName := "custom"
	if names := m.presets.Names(); m.presetIdx >= 0 && m.presetIdx < len(names) {
		presetName = names[m.presetIdx]
	}
	b.WriteString(fmt.Sprintf("Preset: %s   %s %s %s\n\n",
		selectedStyle.Render(presetName),
		renderFlag("subfolders", m.opts.Recursive),
		renderFlag("delete empty", m.opts.DeleteEmpty),
		renderFlag("dry run", m.opts.DryRun),
	))

	for i, c := range m.cats.Categories() {
		marker := "  "
		nameStyle := unselectedStyle
		if i == m.row {
			marker = "> "
			nameStyle = selectedStyle
		}
		b.WriteString(marker + nameStyle.Render(fmt.Sprintf("%-12s", c.Name)))

		if i == m.row {
			// Selected row shows the whole palette with toggles
			for j, ext := range m.palette {
				mark := " "
				if c.Contains(ext) {
					mark = "x"
				}
				cell := fmt.Sprintf("[%s]%s", mark, ext)
				if j == m.col {
					cell = cursorStyle.Render(cell)
				}
				b.WriteString(" " + cell)
			}
		} else {
			b.WriteString(" " + unselectedStyle.Render(strings.Join(c.Extensions, " ")))
		}
		b.WriteString("\n")
	}
	b.WriteString("  " + unselectedStyle.Render(fmt.Sprintf("%-12s", category.OtherName)) +
		" " + unselectedStyle.Render("everything else") + "\n")

	if m.status != "" {
		style := statusOKStyle
		if m.statusErr {
			style = statusErrStyle
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func renderFlag(label string, on bool) string {
	if on {
		return flagOnStyle.Render("[" + label + " ✓]")
	}
	return flagOffStyle.Render("[" + label + " ✗]")
}

// Run starts the editor and blocks until the user quits.
func Run(cats *category.Store, presets *preset.Store, engine *organize.Engine, dir string, opts organize.Options) error {
	p := tea.NewProgram(New(cats, presets, engine, dir, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
