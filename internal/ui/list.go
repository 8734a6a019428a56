package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/shelf/internal/models"
)

var (
	_ list.Item = menuItem{}
	_ list.Item = bookItem{}
)

// Action identifies a main menu entry.
type Action int

const (
	AddByISBN Action = iota + 1
	AddManual
	RemoveBook
	ListBooks
	SearchBook
	ShowStats
	Quit
)

// menuItem implements [list.Item] for a main menu entry. key is the digit shortcut.
type menuItem struct {
	action Action
	key    string
	title  string
	desc   string
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.key + ". " + i.title }
func (i menuItem) Description() string { return i.desc }

func menuItems() []list.Item {
	return []list.Item{
		menuItem{AddByISBN, "1", "Add Book (by ISBN)", "Look up title and author on Open Library"},
		menuItem{AddManual, "2", "Add Book (Manual)", "Enter title, author, and ISBN yourself"},
		menuItem{RemoveBook, "3", "Remove Book", "Delete a book by ISBN"},
		menuItem{ListBooks, "4", "List All Books", "Browse the catalog"},
		menuItem{SearchBook, "5", "Search Book", "Find a book by ISBN"},
		menuItem{ShowStats, "6", "Library Statistics", "Totals and top authors"},
		menuItem{Quit, "0", "Exit", "Leave the library"},
	}
}

// bookItem wraps [models.Book] to implement [list.Item].
type bookItem struct {
	book models.Book
}

func (i bookItem) FilterValue() string { return i.book.Title + " " + i.book.Author + " " + i.book.ISBN }
func (i bookItem) Title() string       { return i.book.Title }
func (i bookItem) Description() string { return i.book.Author + " • ISBN " + i.book.ISBN }
