package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/parleyapp/parley/internal/directory"
	"github.com/parleyapp/parley/internal/models"
	"github.com/parleyapp/parley/internal/session"
	"github.com/parleyapp/parley/internal/timeline"
)

const contactPaneWidth = 32

type chatFocus int

const (
	focusContacts chatFocus = iota
	focusSearch
	focusCompose
)

// ChatModel is the logged-in two-pane view: contacts on the left, the
// active conversation on the right. All state transitions go through the
// session controller; the cursor here is only a position inside the
// filtered contact slice and is resolved to an entity id before selecting.
type ChatModel struct {
	dir  *directory.Directory
	ctrl *session.Controller

	viewport viewport.Model
	textarea textarea.Model
	search   textinput.Model

	focus    chatFocus
	cursor   int
	filtered []models.Entity
	err      error

	windowWidth  int
	windowHeight int
}

func NewChatModel(dir *directory.Directory, ctrl *session.Controller) ChatModel {
	vp := viewport.New(80, 20)

	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.CharLimit = 1000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	ti := textinput.New()
	ti.Placeholder = "Search contacts..."
	ti.CharLimit = 100

	m := ChatModel{
		dir:          dir,
		ctrl:         ctrl,
		viewport:     vp,
		textarea:     ta,
		search:       ti,
		windowWidth:  80,
		windowHeight: 30,
	}
	m.refreshContacts()
	m.refreshConversation()
	m.viewport.GotoBottom()
	return m
}

func (m ChatModel) Init() tea.Cmd {
	return nil
}

// refreshContacts recomputes the filtered slice and keeps the cursor on the
// active conversation when it survives the filter.
func (m *ChatModel) refreshContacts() {
	m.filtered = m.ctrl.FilteredEntities()

	active := m.ctrl.State().ActiveEntity
	m.cursor = 0
	for i, e := range m.filtered {
		if e.ID == active {
			m.cursor = i
			break
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

func (m *ChatModel) refreshConversation() {
	groups, err := m.ctrl.ConversationGroups(m.ctrl.State().ActiveEntity)
	if err != nil {
		m.err = err
		return
	}

	active, _ := m.ctrl.ActiveEntity()
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	m.viewport.SetContent(renderGroups(groups, active, time.Now(), width))
}

func (m *ChatModel) resize(width, height int) {
	m.windowWidth = width
	m.windowHeight = height

	headerHeight := 3
	helpHeight := 2
	searchHeight := 1
	composeHeight := 0
	if m.focus == focusCompose {
		composeHeight = 5
	}

	m.viewport.Width = width - contactPaneWidth - 4
	m.viewport.Height = height - headerHeight - helpHeight - searchHeight - composeHeight
	m.textarea.SetWidth(width - contactPaneWidth - 4)
	m.search.Width = contactPaneWidth - 4

	m.refreshConversation()
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusCompose:
			return m.updateCompose(msg)
		default:
			return m.updateContacts(msg)
		}
	}

	return m, nil
}

func (m ChatModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Reset()
		m.search.Blur()
		m.focus = focusContacts
		m.ctrl.SetSearchFilter("")
		m.refreshContacts()
		return m, nil

	case "enter":
		m.search.Blur()
		m.focus = focusContacts
		return m, nil

	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.ctrl.SetSearchFilter(m.search.Value())
		m.refreshContacts()
		return m, cmd
	}
}

func (m ChatModel) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.textarea.Reset()
		m.textarea.Blur()
		m.focus = focusContacts
		m.err = nil
		m.resize(m.windowWidth, m.windowHeight)
		return m, nil

	case "ctrl+s":
		if _, err := m.ctrl.SendMessage(m.textarea.Value()); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.textarea.Reset()
		m.textarea.Blur()
		m.focus = focusContacts
		m.resize(m.windowWidth, m.windowHeight)
		m.refreshConversation()
		m.viewport.GotoBottom()
		return m, nil

	default:
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
}

func (m ChatModel) updateContacts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		m.ctrl.Logout()
		loginModel := NewLoginModel(m.dir, m.ctrl)
		if m.windowWidth > 0 {
			updatedModel, cmd := loginModel.Update(tea.WindowSizeMsg{Width: m.windowWidth, Height: m.windowHeight})
			loginModel = updatedModel.(LoginModel)
			return loginModel, tea.Batch(loginModel.Init(), cmd)
		}
		return loginModel, loginModel.Init()

	case "/":
		m.focus = focusSearch
		m.search.Focus()
		return m, textinput.Blink

	case "n", "c":
		m.focus = focusCompose
		m.textarea.Focus()
		m.resize(m.windowWidth, m.windowHeight)
		return m, textarea.Blink

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if m.cursor >= len(m.filtered) {
			return m, nil
		}
		if err := m.ctrl.SelectEntity(m.filtered[m.cursor].ID); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.refreshConversation()
		m.viewport.GotoBottom()
		return m, nil

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
}

// renderGroups renders a date-bucketed conversation for the viewport:
// centered date dividers, sent messages right-aligned, received messages on
// the left with the sender name for groups.
func renderGroups(groups []models.DateGroup, entity models.Entity, now time.Time, width int) string {
	if len(groups) == 0 {
		return normalStyle.Render("  No messages in this conversation.")
	}

	var content strings.Builder
	for gi, group := range groups {
		if gi > 0 {
			content.WriteString("\n")
		}

		divider := dateDividerStyle.Render(fmt.Sprintf("── %s ──", timeline.DateLabel(group.Date, now)))
		content.WriteString(lipgloss.NewStyle().Align(lipgloss.Center).Width(width).Render(divider) + "\n\n")

		for _, msg := range group.Messages {
			wrapped := wordwrap.String(msg.Text, width-10)

			if msg.Direction == models.Sent {
				header := messageHeaderStyle.Render(fmt.Sprintf("You • %s ✓✓", msg.Timestamp))
				content.WriteString(lipgloss.NewStyle().Align(lipgloss.Right).Width(width).Render(header) + "\n")
				content.WriteString(lipgloss.NewStyle().Align(lipgloss.Right).Width(width).Render(messageFromMeStyle.Render(wrapped)) + "\n")
			} else {
				sender := msg.Sender
				if sender == "" {
					sender = entity.Name
				}
				header := messageHeaderStyle.Render(fmt.Sprintf("%s • %s", sender, msg.Timestamp))
				content.WriteString(header + "\n")
				content.WriteString(messageFromOtherStyle.Render(wrapped) + "\n")
			}
		}
	}

	return content.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func (m ChatModel) renderContactPane() string {
	var pane strings.Builder

	if m.focus == focusSearch || m.search.Value() != "" {
		pane.WriteString(m.search.View() + "\n")
	} else {
		pane.WriteString(helpStyle.Render("/: search") + "\n")
	}

	active := m.ctrl.State().ActiveEntity
	for i, e := range m.filtered {
		marker := "  "
		if i == m.cursor && m.focus == focusContacts {
			marker = "> "
		}

		icon := "👤"
		if e.IsGroup() {
			icon = "👥"
		}

		name := truncate(e.Name, contactPaneWidth-8)
		line := fmt.Sprintf("%s%s %s", marker, icon, name)
		if e.ID == active {
			line = selectedStyle.Render(line)
		} else {
			line = normalStyle.Render(line)
		}
		pane.WriteString(line + "\n")

		preview := truncate(m.ctrl.LastMessagePreview(e.ID), contactPaneWidth-8)
		pane.WriteString(previewStyle.Render("     "+preview) + "\n")
	}

	if len(m.filtered) == 0 {
		pane.WriteString(helpStyle.Render("  No matches") + "\n")
	}

	return contactPaneStyle.Width(contactPaneWidth).Render(pane.String())
}

func (m ChatModel) View() string {
	user, _ := m.ctrl.CurrentUser()
	active, _ := m.ctrl.ActiveEntity()

	header := titleStyle.Render(fmt.Sprintf("💬 %s", active.Name)) +
		helpStyle.Render(fmt.Sprintf("  (logged in as %s)", user.Name))
	s := header + "\n"

	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	right := m.viewport.View()
	if m.focus == focusCompose {
		right += "\n" + inputStyle.Render("New Message:") + "\n" + m.textarea.View()
	}

	s += lipgloss.JoinHorizontal(lipgloss.Top, m.renderContactPane(), right) + "\n"

	switch m.focus {
	case focusCompose:
		s += helpStyle.Render("ctrl+s: send • esc: cancel")
	case focusSearch:
		s += helpStyle.Render("enter: keep filter • esc: clear")
	default:
		scrollPercent := int(m.viewport.ScrollPercent() * 100)
		s += helpStyle.Render(fmt.Sprintf("↑↓/jk: contacts • enter: open • n: new message • /: search • esc: logout • q: quit • %d%%", scrollPercent))
	}

	return s
}
