package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parleyapp/parley/internal/directory"
	"github.com/parleyapp/parley/internal/models"
	"github.com/parleyapp/parley/internal/session"
)

type identityItem struct {
	entity models.Entity
}

func (i identityItem) Title() string {
	if i.entity.IsGroup() {
		return "👥 " + i.entity.Name
	}
	return "👤 " + i.entity.Name
}

func (i identityItem) Description() string {
	if i.entity.IsGroup() {
		return fmt.Sprintf("Group · %d members", len(i.entity.Members))
	}
	return "Individual"
}

func (i identityItem) FilterValue() string {
	return i.entity.Name
}

// LoginModel is the identity picker shown while logged out.
type LoginModel struct {
	dir          *directory.Directory
	ctrl         *session.Controller
	list         list.Model
	err          error
	windowWidth  int
	windowHeight int
}

func NewLoginModel(dir *directory.Directory, ctrl *session.Controller) LoginModel {
	items := make([]list.Item, 0, dir.Len())
	for _, e := range dir.List() {
		items = append(items, identityItem{entity: e})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("5")).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("8"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "Parley - Who are you?"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return LoginModel{
		dir:          dir,
		ctrl:         ctrl,
		list:         l,
		windowWidth:  80,
		windowHeight: 30,
	}
}

func (m LoginModel) Init() tea.Cmd {
	return nil
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || (msg.String() == "q" && !m.list.SettingFilter()) {
			return m, tea.Quit
		}

		if msg.String() == "enter" && !m.list.SettingFilter() {
			item, ok := m.list.SelectedItem().(identityItem)
			if !ok {
				return m, nil
			}

			if err := m.ctrl.Login(item.entity.ID); err != nil {
				m.err = err
				return m, nil
			}

			chatModel := NewChatModel(m.dir, m.ctrl)
			if m.windowWidth > 0 {
				updatedModel, cmd := chatModel.Update(tea.WindowSizeMsg{Width: m.windowWidth, Height: m.windowHeight})
				chatModel = updatedModel.(ChatModel)
				return chatModel, tea.Batch(chatModel.Init(), cmd)
			}
			return chatModel, chatModel.Init()
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m LoginModel) View() string {
	s := m.list.View() + "\n"
	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}
	s += helpStyle.Render("↑↓/jk: navigate • enter: log in • /: filter • q: quit")
	return s
}
