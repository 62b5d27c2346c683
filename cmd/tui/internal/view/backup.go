package view

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javedfarm/dairybook/internal/backup"
)

type BackupModel struct {
	CommonModel
	svc *backup.Service

	info    backup.Info
	loading bool
	err     error
	status  string
}

func NewBackupModel(svc *backup.Service) BackupModel {
	return BackupModel{svc: svc}
}

func (m BackupModel) Title() string { return "Backup" }
func (m BackupModel) ShortHelp() string {
	return "Esc: back | e: export snapshot | m: refresh mirror | r: refresh"
}

func (m BackupModel) Init() tea.Cmd {
	return m.loadInfoCmd()
}

func (m BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case backupInfoMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.info = msg.info

		return m, nil

	case backupActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		return m, m.loadInfoCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadInfoCmd()
		case "e":
			return m, m.exportCmd()
		case "m":
			return m, m.mirrorCmd()
		}
	}

	return m, nil
}

func (m BackupModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading backup info...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	mirror := "none"
	if m.info.MirrorExists {
		mirror = m.info.MirroredAt.Format("2006-01-02 15:04:05")
	}

	body := fmt.Sprintf(
		"Backup\n\nMirror: %s\nHistory copies: %d\n\n%s",
		activeStyle(mirror),
		m.info.HistoryCount,
		m.ShortHelp(),
	)

	if m.status != "" {
		body += "\n\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(2).Render(body)
}

// Messages

type backupInfoMsg struct {
	info backup.Info
	err  error
}

func (m BackupModel) loadInfoCmd() tea.Cmd {
	return func() tea.Msg {
		info, err := m.svc.Info()
		return backupInfoMsg{info: info, err: err}
	}
}

type backupActionMsg struct {
	status string
	err    error
}

func (m BackupModel) exportCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		path := fmt.Sprintf("dairybook-%s.json", time.Now().UTC().Format("20060102-150405"))

		f, err := os.Create(path)
		if err != nil {
			return backupActionMsg{err: err}
		}
		defer f.Close()

		if err := m.svc.ExportJSON(ctx, f); err != nil {
			return backupActionMsg{err: err}
		}

		return backupActionMsg{status: fmt.Sprintf("Wrote %s", path)}
	}
}

func (m BackupModel) mirrorCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Mirror(ctx); err != nil {
			return backupActionMsg{err: err}
		}

		return backupActionMsg{status: "Mirror refreshed"}
	}
}
