// Command editarea-demo is a small note-capture program built on the
// editarea component: type a note, press enter to commit it, press tab to
// toggle focus. The most recent committed note is copied to the system
// clipboard.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/editarea/editarea"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	maxHeight := flag.Int("max-height", 6, "cap the editor height at this many rows")
	revert := flag.Bool("revert", true, "discard uncommitted input when the editor loses focus")
	logPath := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	app := newApp(*maxHeight, *revert, logger)
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

type app struct {
	editor editarea.Model
	notes  []string
	status string
}

func newApp(maxHeight int, revert bool, logger *slog.Logger) *app {
	a := &app{}
	a.editor = editarea.New(
		editarea.WithPlaceholder("Type a note, enter to save"),
		editarea.WithMaxHeight(maxHeight),
		editarea.WithRevertOnBlur(revert),
		editarea.WithLogger(logger),
		editarea.WithOnCommit(a.commit),
	)
	a.editor.Focus()
	return a
}

// commit runs while the in-progress text is still bound; after it returns
// the editor restores its pre-session content.
func (a *app) commit() {
	note := strings.TrimSpace(a.editor.Text().Content)
	if note == "" {
		a.status = "nothing to save"
		return
	}
	a.notes = append(a.notes, note)
	if err := clipboard.WriteAll(note); err != nil {
		a.status = fmt.Sprintf("saved (clipboard unavailable: %v)", err)
		return
	}
	a.status = "saved and copied to clipboard"
}

func (a *app) Init() tea.Cmd { return a.editor.Init() }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.editor = a.editor.SetWidth(msg.Width - 4)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return a, tea.Quit
		case tea.KeyTab:
			if a.editor.Focused() {
				a.editor.Blur()
			} else {
				a.editor.Focus()
			}
		}
	}
	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

func (a *app) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Notes"))
	b.WriteString("\n\n")
	if len(a.notes) == 0 {
		b.WriteString(noteStyle.Render("(none yet)"))
		b.WriteString("\n")
	}
	for i, n := range a.notes {
		b.WriteString(noteStyle.Render(fmt.Sprintf("%2d. %s", i+1, n)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.editor.View())
	b.WriteString("\n\n")
	hint := "enter: save · tab: focus · ctrl+c: quit"
	if a.status != "" {
		hint = a.status + "  |  " + hint
	}
	b.WriteString(hintStyle.Render(hint))
	return b.String()
}
