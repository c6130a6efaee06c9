package tui

import (
	"context"
	"fmt"
	"time"

	"trireme_flashcards/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

type drillPhase int

const (
	phaseLoading drillPhase = iota
	phaseCard
	phaseCompleted
	phaseError
)

var (
	frontStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	backStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	faceLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#595959")).
			Padding(1, 4)
)

type advanceMsg struct{ resp *model.DrillAdvanceResponse }
type flipMsg struct{ view *model.DrillCardView }
type gradeMsg struct{ progress *model.DrillProgressResponse }
type errMsg struct{ err error }

// Model implements the Bubble Tea drill UI.
// カードの出題・めくり・採点はすべてサーバー側のドリルセッションが管理し、
// このモデルは現在の表示面と残り枚数だけを保持する。
type Model struct {
	client   *Client
	drillID  uuid.UUID
	deckName string

	phase     drillPhase
	card      *model.DrillCardView
	remaining int
	reviewed  int
	err       error

	width  int
	height int
}

// NewModel constructs a drill TUI model for an already started drill.
func NewModel(client *Client, drillID uuid.UUID, deckName string, dueCount int) *Model {
	return &Model{
		client:    client,
		drillID:   drillID,
		deckName:  deckName,
		phase:     phaseLoading,
		remaining: dueCount,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.advanceCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// 中断: 未採点のカードの状態は変更されない
			m.stopDrill()
			return m, tea.Quit
		case " ", "enter":
			if m.phase == phaseCard {
				return m, m.flipCmd()
			}
			if m.phase == phaseCompleted {
				return m, tea.Quit
			}
			return m, nil
		case "p":
			if m.phase == phaseCard {
				return m, m.passCmd()
			}
			return m, nil
		case "f":
			if m.phase == phaseCard {
				return m, m.failCmd()
			}
			return m, nil
		default:
			return m, nil
		}

	case advanceMsg:
		if msg.resp.Completed {
			m.phase = phaseCompleted
			m.remaining = 0
			return m, nil
		}
		m.phase = phaseCard
		m.card = msg.resp.Card
		return m, nil

	case flipMsg:
		m.card = msg.view
		return m, nil

	case gradeMsg:
		m.reviewed++
		m.remaining = msg.progress.Remaining
		if msg.progress.Completed {
			m.phase = phaseCompleted
			return m, nil
		}
		m.phase = phaseLoading
		m.card = nil
		return m, m.advanceCmd()

	case errMsg:
		m.phase = phaseError
		m.err = msg.err
		return m, tea.Quit

	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.phase {
	case phaseLoading:
		content = faceLabelStyle.Render("Loading...")
	case phaseCard:
		content = m.renderCard()
	case phaseCompleted:
		content = completedStyle.Render(fmt.Sprintf("Drill completed! %d cards reviewed.", m.reviewed)) +
			"\n\n" + footerStyle.Render("press enter to exit")
	case phaseError:
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderCard() string {
	if m.card == nil {
		return ""
	}
	label := "FRONT"
	style := frontStyle
	if m.card.Face == "back" {
		label = "BACK"
		style = backStyle
	}
	inner := faceLabelStyle.Render(label) + "\n\n" + style.Render(m.card.Text)
	return cardStyle.Render(inner)
}

func (m *Model) renderFooter() string {
	segments := fmt.Sprintf("%s · %d left · space: flip · p: pass · f: fail · q: quit",
		m.deckName, m.remaining)
	return footerStyle.Render(segments)
}

func (m *Model) advanceCmd() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.Next(context.Background(), m.drillID)
		if err != nil {
			return errMsg{err}
		}
		return advanceMsg{resp}
	}
}

func (m *Model) flipCmd() tea.Cmd {
	return func() tea.Msg {
		view, err := m.client.Flip(context.Background(), m.drillID)
		if err != nil {
			return errMsg{err}
		}
		return flipMsg{view}
	}
}

func (m *Model) passCmd() tea.Cmd {
	return func() tea.Msg {
		progress, err := m.client.Pass(context.Background(), m.drillID)
		if err != nil {
			return errMsg{err}
		}
		return gradeMsg{progress}
	}
}

func (m *Model) failCmd() tea.Cmd {
	return func() tea.Msg {
		progress, err := m.client.Fail(context.Background(), m.drillID)
		if err != nil {
			return errMsg{err}
		}
		return gradeMsg{progress}
	}
}

// stopDrill はサーバー側のセッションを破棄します。失敗しても終了は続行する。
func (m *Model) stopDrill() {
	if m.phase == phaseCompleted || m.phase == phaseError {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = m.client.StopDrill(ctx, m.drillID)
}

// Err returns the error the drill ended with, if any.
func (m *Model) Err() error {
	if m.phase == phaseError {
		return m.err
	}
	return nil
}
