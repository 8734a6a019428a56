// Package ui implements the interactive library menu using bubbletea's Elm architecture.
//
// The TUI mirrors a numbered console menu:
//  1. [MenuView] : Choose an action (arrow keys or the digits 1-6, 0 to exit)
//  2. [InputView] : Fill in ISBN, or title, author, and ISBN for a manual add
//  3. [LookupView] : Spinner and progress messages while Open Library is queried
//  4. [ConfirmView] : Show the found book and ask before removing it
//  5. [BooksView] : Filterable list of every book
//  6. [StatsView] : Totals, top authors, and authors with more than one book
//  7. [ResultView] : Outcome of the last action; any key returns to the menu
//
// Every operation goes through [tasks.Catalog]. Lookup progress flows through a channel from the catalog, providing
// non-blocking status reporting while the request runs.
package ui
