package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxCandidates bounds the directory walk for the interactive picker.
const maxCandidates = 500

// =============================================================================
// DocListModel - Interactive root document selection
// =============================================================================

// DocListModel is the bubbletea model for picking a root document from the
// candidate context files found under the boundary.
type DocListModel struct {
	Boundary string
	Docs     []string // boundary-relative candidate paths
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewDocListModel creates a new document list model.
func NewDocListModel(boundary string, docs []string) DocListModel {
	return DocListModel{
		Boundary: boundary,
		Docs:     docs,
		Height:   15,
	}
}

func (m DocListModel) Init() tea.Cmd {
	return nil
}

func (m DocListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Docs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Docs[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DocListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Select a root document") + "\n")
	b.WriteString(listDimStyle.Render(m.Boundary) + "\n\n")

	end := m.Offset + m.Height
	if end > len(m.Docs) {
		end = len(m.Docs)
	}
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("❯ "+m.Docs[i]) + "\n")
		} else {
			b.WriteString(listNormalStyle.Render("  "+m.Docs[i]) + "\n")
		}
	}

	b.WriteString("\n" + listDimStyle.Render("↑/↓ move · enter select · q quit"))
	return b.String()
}

// pickRootDocument lists candidate context files under boundary and lets
// the user pick one interactively.
func pickRootDocument(boundary string) (string, error) {
	docs, err := findCandidates(boundary)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("no candidate documents found under %s", boundary)
	}

	final, err := tea.NewProgram(NewDocListModel(boundary, docs)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(DocListModel)
	if !ok || m.Selected == "" {
		return "", fmt.Errorf("no document selected")
	}
	return m.Selected, nil
}

// findCandidates walks the boundary collecting Markdown and plain-text
// files, skipping hidden and dependency directories. The engine itself
// never gates on extension; the picker is just a convenience surface for
// the common memory-file layout.
func findCandidates(boundary string) ([]string, error) {
	var docs []string
	err := filepath.WalkDir(boundary, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		name := d.Name()
		if d.IsDir() {
			if path != boundary && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".md", ".markdown", ".txt":
		default:
			return nil
		}
		rel, rerr := filepath.Rel(boundary, path)
		if rerr != nil {
			return nil
		}
		docs = append(docs, filepath.ToSlash(rel))
		if len(docs) >= maxCandidates {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(docs)
	return docs, nil
}
