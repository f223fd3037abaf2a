package tui

import (
	"errors"
	"io"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gabrielfornes/flowsheet/internal/flowsheet"
	"github.com/gabrielfornes/flowsheet/internal/storage"
)

// --- Commands (async operations) ---

type timerFiredMsg struct {
	token flowsheet.Token
}

type markdownRenderedMsg struct {
	content string
}

type exportWrittenMsg struct {
	name string
	err  error
}

type urlOpenedMsg struct {
	url string
	err error
}

func (m Model) renderMarkdownCmd(content string, width int) tea.Cmd {
	return func() tea.Msg {
		return markdownRenderedMsg{content: renderMarkdown(width, content)}
	}
}

func (m Model) exportHEP(content string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if store == nil {
			return exportWrittenMsg{err: errors.New("no workspace configured")}
		}
		name, err := store.WriteExport(storage.TodayName(), content)
		return exportWrittenMsg{name: name, err: err}
	}
}

// openLinkCmd opens the catalog link of a record, if it has one.
func (m *Model) openLinkCmd(recordID string) tea.Cmd {
	r, ok := m.doc.Record(recordID)
	if !ok {
		return nil
	}
	l, linked := r.Linked()
	if !linked || l.URL == "" {
		m.setError("No library link on this row")
		return nil
	}
	open := m.openURL
	url := l.URL
	m.log.Debug("opening link", "record", recordID, "url", url)
	return func() tea.Msg {
		return urlOpenedMsg{url: url, err: open(url)}
	}
}

// openURL hands u to the platform opener and waits for it to exit.
func openURL(u string) error {
	u = strings.TrimSpace(u)
	if u == "" {
		return errors.New("empty url")
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", u)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", u)
	default:
		cmd = exec.Command("xdg-open", u)
	}
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Wait()
}
