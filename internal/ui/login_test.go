package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleyapp/parley/internal/directory"
	"github.com/parleyapp/parley/internal/session"
	"github.com/parleyapp/parley/internal/store"
)

func testLoginModel(t *testing.T) LoginModel {
	t.Helper()

	dir := directory.Default()
	st, err := store.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	ctrl := session.New(dir, st, nil, fixedClock)
	return NewLoginModel(dir, ctrl)
}

func TestNewLoginModelListsAllIdentities(t *testing.T) {
	m := testLoginModel(t)

	if got := len(m.list.Items()); got != 20 {
		t.Errorf("expected 20 identities, got %d", got)
	}
}

func TestLoginModelEnterStartsSession(t *testing.T) {
	m := testLoginModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	chat, ok := updated.(ChatModel)
	if !ok {
		t.Fatalf("expected ChatModel after login, got %T", updated)
	}

	if !chat.ctrl.LoggedIn() {
		t.Error("expected an active session")
	}
	if got := chat.ctrl.State().CurrentUser; got != 1 {
		t.Errorf("expected first identity logged in, got %d", got)
	}
}

func TestLoginModelQuitKeys(t *testing.T) {
	m := testLoginModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command for q")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}
