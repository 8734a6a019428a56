package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/repositories"
	"github.com/desertthunder/shelf/internal/tasks"
	tu "github.com/desertthunder/shelf/internal/testing"
)

func newTestModel(t *testing.T) (*Model, *tasks.Catalog) {
	t.Helper()
	lookup := &tu.MockLookup{
		Books: map[string]*models.BookMetadata{
			"9780451524935": {Title: "1984", AuthorKeys: []string{"/authors/OL118077A"}},
		},
		Authors: map[string]string{"/authors/OL118077A": "George Orwell"},
	}
	store := repositories.NewCatalogStore(filepath.Join(t.TempDir(), "library.json"))
	catalog := tasks.NewCatalog(store, lookup, nil)
	if err := catalog.Open(); err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}

	m := NewModel(context.Background(), catalog)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, catalog
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

// drain runs cmd and feeds every resulting message back into m, following batches.
func drain(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			drain(m, c)
		}
	case Msg:
		_, next := m.Update(msg)
		drain(m, next)
	default:
		m.Update(msg)
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelMenu(t *testing.T) {
	t.Run("digits select actions", func(t *testing.T) {
		tt := []struct {
			key  string
			want ViewState
		}{
			{"1", InputView},
			{"2", InputView},
			{"3", InputView},
			{"4", BooksView},
			{"5", InputView},
			{"6", StatsView},
		}

		for _, tc := range tt {
			m, _ := newTestModel(t)
			press(m, tc.key)
			if m.State() != tc.want {
				t.Errorf("key %s: expected view %d, got %d", tc.key, tc.want, m.State())
			}
		}
	})

	t.Run("manual form has three fields", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, "2")
		if len(m.inputs) != 3 {
			t.Errorf("expected 3 inputs, got %d", len(m.inputs))
		}
	})

	t.Run("quit", func(t *testing.T) {
		for _, k := range []string{"0", "q", "ctrl+c"} {
			m, _ := newTestModel(t)
			if cmd := press(m, k); !isQuit(cmd) {
				t.Errorf("expected %s to quit", k)
			}
		}
	})

	t.Run("esc returns from a form", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, "1", "esc")
		if m.State() != MenuView {
			t.Errorf("expected menu, got %d", m.State())
		}
	})
}

func TestModelAddManual(t *testing.T) {
	m, catalog := newTestModel(t)

	press(m, "2", "Dune", "enter", "Frank Herbert", "tab", "9780441172719")
	drain(m, press(m, "enter"))

	if m.State() != ResultView || m.failed {
		t.Fatalf("expected success result, got view %d: %s", m.State(), m.result)
	}
	if !strings.Contains(m.View(), "Dune by Frank Herbert (ISBN: 9780441172719)") {
		t.Errorf("expected book in view, got %s", m.View())
	}
	if _, ok := catalog.Find("9780441172719"); !ok {
		t.Error("expected book to be stored")
	}

	press(m, "x")
	if m.State() != MenuView {
		t.Errorf("expected any key to return to the menu, got %d", m.State())
	}
}

func TestModelAddByISBN(t *testing.T) {
	t.Run("lookup success", func(t *testing.T) {
		m, catalog := newTestModel(t)

		press(m, "1", "9780451524935")
		cmd := press(m, "enter")
		if m.State() != LookupView {
			t.Fatalf("expected lookup view, got %d", m.State())
		}
		if !strings.Contains(m.View(), "Searching for book with ISBN: 9780451524935") {
			t.Errorf("expected searching message, got %s", m.View())
		}

		drain(m, cmd)

		if m.State() != ResultView || m.failed {
			t.Fatalf("expected success, got view %d: %s", m.State(), m.result)
		}
		if book, ok := catalog.Find("9780451524935"); !ok || book.Author != "George Orwell" {
			t.Errorf("expected looked-up book, got %+v", book)
		}
	})

	t.Run("lookup miss", func(t *testing.T) {
		m, catalog := newTestModel(t)

		press(m, "1", "0000")
		drain(m, press(m, "enter"))

		if m.State() != ResultView || !m.failed {
			t.Fatalf("expected failure, got view %d: %s", m.State(), m.result)
		}
		if !strings.Contains(m.result, "Failed to add book") {
			t.Errorf("unexpected result %s", m.result)
		}
		if len(catalog.List()) != 0 {
			t.Error("expected nothing to be stored")
		}
	})

	t.Run("empty isbn", func(t *testing.T) {
		m, _ := newTestModel(t)

		press(m, "1", "enter")
		if m.State() != ResultView || m.result != "ISBN cannot be empty." {
			t.Errorf("expected empty isbn error, got %d: %s", m.State(), m.result)
		}
	})
}

func TestModelRemove(t *testing.T) {
	setup := func(t *testing.T) (*Model, *tasks.Catalog) {
		m, catalog := newTestModel(t)
		if _, err := catalog.AddManual(context.Background(), "Dune", "Frank Herbert", "111"); err != nil {
			t.Fatal(err)
		}
		press(m, "3", "111", "enter")
		if m.State() != ConfirmView {
			t.Fatalf("expected confirm view, got %d", m.State())
		}
		if !strings.Contains(m.View(), "Found book: Dune by Frank Herbert (ISBN: 111)") {
			t.Errorf("expected found book in view, got %s", m.View())
		}
		return m, catalog
	}

	t.Run("confirmed", func(t *testing.T) {
		m, catalog := setup(t)
		drain(m, press(m, "y"))

		if m.State() != ResultView || m.failed {
			t.Fatalf("expected success, got %d: %s", m.State(), m.result)
		}
		if _, ok := catalog.Find("111"); ok {
			t.Error("expected book to be removed")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		m, catalog := setup(t)
		press(m, "n")

		if m.result != "Operation cancelled." {
			t.Errorf("expected cancellation, got %s", m.result)
		}
		if _, ok := catalog.Find("111"); !ok {
			t.Error("expected book to remain")
		}
	})

	t.Run("unknown isbn", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, "3", "999", "enter")

		if m.State() != ResultView || m.result != "Book with ISBN 999 not found." {
			t.Errorf("unexpected result %d: %s", m.State(), m.result)
		}
	})
}

func TestModelViews(t *testing.T) {
	t.Run("search", func(t *testing.T) {
		m, catalog := newTestModel(t)
		if _, err := catalog.AddManual(context.Background(), "Dune", "Frank Herbert", "111"); err != nil {
			t.Fatal(err)
		}

		press(m, "5", "111", "enter")
		if m.result != "✓ Found: Dune by Frank Herbert (ISBN: 111)" {
			t.Errorf("unexpected result %s", m.result)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, "4")

		if !strings.Contains(m.View(), "No books in the library yet") {
			t.Errorf("expected empty notice, got %s", m.View())
		}
		press(m, "esc")
		if m.State() != MenuView {
			t.Errorf("expected menu, got %d", m.State())
		}
	})

	t.Run("stats", func(t *testing.T) {
		m, catalog := newTestModel(t)
		for _, isbn := range []string{"1", "2"} {
			if _, err := catalog.AddManual(context.Background(), "Book "+isbn, "George Orwell", isbn); err != nil {
				t.Fatal(err)
			}
		}

		press(m, "6")
		view := m.View()
		if !strings.Contains(view, "Total books: 2") || !strings.Contains(view, "George Orwell: 2 books") {
			t.Errorf("unexpected stats view %s", view)
		}
	})
}
