package ui

import (
	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/ui/views"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pushPageMsg opens a page on top of the stack
type pushPageMsg struct {
	page page
}

// popPageMsg closes the top page
type popPageMsg struct{}

// statusMsg replaces the status line
type statusMsg struct {
	text string
	kind views.StatusKind
}

// clearStatusMsg clears the status line if it still shows the message
// with the given sequence number
type clearStatusMsg struct {
	seq int
}

// openPagerMsg shows content in the full screen pager
type openPagerMsg struct {
	content string
}

// pagerDoneMsg is returned once the pager exits
type pagerDoneMsg struct {
	err error
}

// quitMsg signals that the application should quit
type quitMsg struct{}
