package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MenuView ViewState = iota
	InputView
	LookupView
	ConfirmView
	BooksView
	StatsView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	catalog    *tasks.Catalog
	view       ViewState
	action     Action
	width      int
	height     int
	menu       list.Model
	books      list.Model
	inputs     []textinput.Model
	focus      int
	spinner    spinner.Model
	progress   tasks.ProgressUpdate
	progressCh chan tasks.ProgressUpdate
	pending    models.Book // Book awaiting removal confirmation
	stats      models.Stats
	result     string
	failed     bool
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model backed by catalog.
func NewModel(ctx context.Context, catalog *tasks.Catalog) *Model {
	menu := list.New(menuItems(), list.NewDefaultDelegate(), 0, 0)
	menu.Title = "📚 Library Management System"
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)

	books := list.New(nil, list.NewDefaultDelegate(), 0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.title.UnsetMarginBottom()

	return &Model{
		ctx:     ctx,
		catalog: catalog,
		view:    MenuView,
		menu:    menu,
		books:   books,
		spinner: sp,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// State returns the current view.
func (m *Model) State() ViewState {
	return m.view
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-6)
		m.books.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.abort) {
			return m, tea.Quit
		}

		switch m.view {
		case MenuView:
			return m.handleMenuKeys(msg)
		case InputView:
			return m.handleInputKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case BooksView:
			return m.handleBooksKeys(msg)
		case StatsView, ResultView:
			m.reset()
			return m, nil
		}
		return m, nil

	case spinner.TickMsg:
		if m.view != LookupView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, waitForProgress(m.progressCh)

	case MsgBookAdded:
		m.progressCh = nil
		res := msg.data.(bookResult)
		if res.err != nil {
			m.showError(fmt.Sprintf("Failed to add book: %v", res.err))
			return m, nil
		}
		m.showResult(fmt.Sprintf("✓ Book added successfully!\n\n%s", res.book))
		return m, nil

	case MsgBookRemoved:
		res := msg.data.(bookResult)
		if res.err != nil {
			m.showError(fmt.Sprintf("Failed to remove book: %v", res.err))
			return m, nil
		}
		m.showResult(fmt.Sprintf("✓ Book removed successfully!\n\n%s", res.book))
		return m, nil
	}
	return m, nil
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.enter) {
		if item, ok := m.menu.SelectedItem().(menuItem); ok {
			return m.selectAction(item.action)
		}
		return m, nil
	}

	for _, it := range m.menu.Items() {
		if item := it.(menuItem); msg.String() == item.key {
			return m.selectAction(item.action)
		}
	}
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

// selectAction switches to the view for action.
func (m *Model) selectAction(action Action) (tea.Model, tea.Cmd) {
	m.action = action
	m.failed = false
	m.result = ""

	switch action {
	case AddByISBN:
		return m, m.openForm("ISBN")
	case AddManual:
		return m, m.openForm("Title", "Author", "ISBN")
	case RemoveBook, SearchBook:
		return m, m.openForm("ISBN")
	case ListBooks:
		books := m.catalog.List()
		items := make([]list.Item, len(books))
		for i, b := range books {
			items[i] = bookItem{book: b}
		}
		m.books = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-6)
		m.books.Title = fmt.Sprintf("All Books in Library (%d)", len(books))
		m.books.SetShowHelp(false)
		m.view = BooksView
		return m, nil
	case ShowStats:
		m.stats = m.catalog.Stats()
		m.view = StatsView
		return m, nil
	case Quit:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) openForm(labels ...string) tea.Cmd {
	m.inputs = make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Prompt = styles.label.Render(fmt.Sprintf("%-7s", label)) + " "
		in.Placeholder = strings.ToLower(label)
		in.CharLimit = 256
		m.inputs[i] = in
	}
	m.focus = 0
	m.view = InputView
	return m.inputs[0].Focus()
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.reset()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if m.focus < len(m.inputs)-1 {
			return m, m.focusInput(m.focus + 1)
		}
		return m, m.submit()
	case key.Matches(msg, m.keys.next):
		return m, m.focusInput((m.focus + 1) % len(m.inputs))
	case key.Matches(msg, m.keys.prev):
		return m, m.focusInput((m.focus - 1 + len(m.inputs)) % len(m.inputs))
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

// submit runs the action for the completed form.
func (m *Model) submit() tea.Cmd {
	values := m.values()

	switch m.action {
	case AddManual:
		title, author, isbn := values[0], values[1], values[2]
		return func() tea.Msg {
			book, err := m.catalog.AddManual(m.ctx, title, author, isbn)
			return bookAddedMsg(book, err)
		}
	}

	isbn := values[0]
	if isbn == "" {
		m.showError("ISBN cannot be empty.")
		return nil
	}

	switch m.action {
	case AddByISBN:
		m.view = LookupView
		m.progress = tasks.ProgressUpdate{Message: fmt.Sprintf("Searching for book with ISBN: %s", isbn)}
		m.progressCh = make(chan tasks.ProgressUpdate, 16)
		return tea.Batch(m.spinner.Tick, m.addByISBN(isbn, m.progressCh), waitForProgress(m.progressCh))
	case RemoveBook:
		book, ok := m.catalog.Find(isbn)
		if !ok {
			m.showError(fmt.Sprintf("Book with ISBN %s not found.", isbn))
			return nil
		}
		m.pending = book
		m.view = ConfirmView
		return nil
	case SearchBook:
		if book, ok := m.catalog.Find(isbn); ok {
			m.showResult(fmt.Sprintf("✓ Found: %s", book))
		} else {
			m.showError(fmt.Sprintf("Book with ISBN %s not found.", isbn))
		}
	}
	return nil
}

func (m *Model) addByISBN(isbn string, progress chan tasks.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		book, err := m.catalog.AddByISBNWithProgress(m.ctx, isbn, progress)
		close(progress)
		return bookAddedMsg(book, err)
	}
}

// waitForProgress relays the next update. Update re-arms it after each one until the channel closes.
func waitForProgress(progress <-chan tasks.ProgressUpdate) tea.Cmd {
	if progress == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		isbn := m.pending.ISBN
		return m, func() tea.Msg {
			book, err := m.catalog.Remove(m.ctx, isbn)
			return bookRemovedMsg(book, err)
		}
	case key.Matches(msg, m.keys.no):
		m.showError("Operation cancelled.")
	}
	return m, nil
}

func (m *Model) handleBooksKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.books.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.back), msg.String() == "q":
			m.reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.books, cmd = m.books.Update(msg)
	return m, cmd
}

func (m *Model) showResult(result string) {
	m.result = result
	m.failed = false
	m.view = ResultView
}

func (m *Model) showError(result string) {
	m.result = result
	m.failed = true
	m.view = ResultView
}

// reset returns to the menu.
func (m *Model) reset() {
	m.view = MenuView
	m.inputs = nil
	m.pending = models.Book{}
	m.progress = tasks.ProgressUpdate{}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case MenuView:
		return m.renderMenu()
	case InputView:
		return m.renderForm()
	case LookupView:
		return m.renderLookup()
	case ConfirmView:
		return m.renderConfirm()
	case BooksView:
		return m.renderBooks()
	case StatsView:
		return m.renderStats()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) renderMenu() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.menu.View(), helpView)
}

func (m *Model) formTitle() string {
	switch m.action {
	case AddByISBN:
		return "📖 Add Book by ISBN"
	case AddManual:
		return "📝 Add Book Manually"
	case RemoveBook:
		return "🗑️ Remove Book"
	case SearchBook:
		return "🔍 Search Book"
	default:
		return ""
	}
}

func (m *Model) renderForm() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(m.formTitle()))
	b.WriteString("\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	keys := []key.Binding{m.keys.enter, m.keys.back}
	if len(m.inputs) > 1 {
		keys = append(keys, m.keys.next)
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(keys))
	return b.String()
}

func (m *Model) renderLookup() string {
	title := styles.title.Render(m.formTitle())
	return fmt.Sprintf("%s\n%s %s\n\n%s", title, m.spinner.View(), m.progress.Message, styles.help.Render("Please wait..."))
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("🗑️ Remove Book")
	info := fmt.Sprintf("📖 Found book: %s\n\n%s", m.pending, styles.warn.Render("Are you sure you want to remove this book?"))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}

func (m *Model) renderBooks() string {
	if len(m.books.Items()) == 0 {
		return fmt.Sprintf("%s\n%s\n\n%s",
			styles.title.Render("📚 All Books in Library"),
			"📭 No books in the library yet.",
			m.help.ShortHelpView([]key.Binding{m.keys.back}))
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.back})
	return fmt.Sprintf("%s\n\n%s", m.books.View(), helpView)
}

func (m *Model) renderStats() string {
	title := styles.title.Render("📊 Library Statistics")
	return fmt.Sprintf("%s\n%s\n%s", title, formatter.StatsToText(m.stats), styles.help.Render("Press any key to continue..."))
}

func (m *Model) renderResult() string {
	body := styles.ok.Render(m.result)
	if m.failed {
		body = styles.err.Render("✗ " + m.result)
	}
	return fmt.Sprintf("%s\n\n%s", body, styles.help.Render("Press any key to continue..."))
}
