package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgBookAdded MsgKind = iota
	MsgBookRemoved
	MsgProgressUpdate
)

type bookResult struct {
	book models.Book
	err  error
}

// bookAddedMsg is the constructor for [MsgBookAdded]
func bookAddedMsg(book models.Book, err error) Msg {
	return Msg{kind: MsgBookAdded, data: bookResult{book, err}}
}

// bookRemovedMsg is the constructor for [MsgBookRemoved]
func bookRemovedMsg(book models.Book, err error) Msg {
	return Msg{kind: MsgBookRemoved, data: bookResult{book, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}
