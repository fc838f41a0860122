package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidMenuItem is returned when a menu item fails validation.
var ErrInvalidMenuItem = errors.New("invalid menu item")

// PageID identifies a master or transaction page.
type PageID string

const (
	PageLedgers    PageID = "ledgers"
	PageGroups     PageID = "groups"
	PageLedgerForm PageID = "ledger-form"
	PageDayBook    PageID = "daybook"
)

// ReportID identifies a report.
type ReportID string

const (
	ReportTrialBalance ReportID = "trial-balance"
)

// UtilityID identifies a utility screen.
type UtilityID string

const (
	UtilityAmountWords UtilityID = "amount-words"
)

var (
	knownPages     = map[PageID]bool{PageLedgers: true, PageGroups: true, PageLedgerForm: true, PageDayBook: true}
	knownReports   = map[ReportID]bool{ReportTrialBalance: true}
	knownUtilities = map[UtilityID]bool{UtilityAmountWords: true}
)

// MenuAction is what a menu item does when committed. The set of variants
// is closed: OpenPage, OpenReport, RunUtility and Quit.
type MenuAction interface {
	menuAction()
	validate() error
}

// OpenPage opens a master or transaction page.
type OpenPage struct {
	Page PageID
}

// OpenReport opens a report.
type OpenReport struct {
	Report ReportID
}

// RunUtility opens a utility screen.
type RunUtility struct {
	Utility UtilityID
}

// Quit leaves the application.
type Quit struct{}

func (OpenPage) menuAction()   {}
func (OpenReport) menuAction() {}
func (RunUtility) menuAction() {}
func (Quit) menuAction()       {}

func (a OpenPage) validate() error {
	if !knownPages[a.Page] {
		return fmt.Errorf("unknown page %q", a.Page)
	}
	return nil
}

func (a OpenReport) validate() error {
	if !knownReports[a.Report] {
		return fmt.Errorf("unknown report %q", a.Report)
	}
	return nil
}

func (a RunUtility) validate() error {
	if !knownUtilities[a.Utility] {
		return fmt.Errorf("unknown utility %q", a.Utility)
	}
	return nil
}

func (Quit) validate() error { return nil }

// MenuItem is one selectable line of a menu.
type MenuItem struct {
	Label  string
	Hotkey rune
	Action MenuAction
}

// NewMenuItem builds a validated menu item. Hotkey 0 means none.
func NewMenuItem(label string, hotkey rune, action MenuAction) (MenuItem, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return MenuItem{}, fmt.Errorf("%w: empty label", ErrInvalidMenuItem)
	}
	if action == nil {
		return MenuItem{}, fmt.Errorf("%w: %q has no action", ErrInvalidMenuItem, label)
	}
	if hotkey != 0 && !unicode.IsLetter(hotkey) && !unicode.IsDigit(hotkey) {
		return MenuItem{}, fmt.Errorf("%w: %q hotkey %q is not a letter or digit", ErrInvalidMenuItem, label, hotkey)
	}
	if err := action.validate(); err != nil {
		return MenuItem{}, fmt.Errorf("%w: %q: %v", ErrInvalidMenuItem, label, err)
	}
	return MenuItem{Label: label, Hotkey: unicode.ToLower(hotkey), Action: action}, nil
}

// MustMenuItem is NewMenuItem for built-in menus; it panics on invalid input.
func MustMenuItem(label string, hotkey rune, action MenuAction) MenuItem {
	item, err := NewMenuItem(label, hotkey, action)
	if err != nil {
		panic(err)
	}
	return item
}

// MenuSection is a titled run of items.
type MenuSection struct {
	Title string
	Items []MenuItem
}

// NewMenuSection groups items under a title.
func NewMenuSection(title string, items ...MenuItem) MenuSection {
	return MenuSection{Title: title, Items: items}
}

// Menu is an ordered list of sections. Navigation runs over the flattened
// item list.
type Menu struct {
	Sections []MenuSection
}

// NewMenu validates that hotkeys are unique across all sections.
func NewMenu(sections ...MenuSection) (Menu, error) {
	seen := make(map[rune]string)
	for _, s := range sections {
		for _, item := range s.Items {
			if item.Hotkey == 0 {
				continue
			}
			if other, ok := seen[item.Hotkey]; ok {
				return Menu{}, fmt.Errorf("%w: hotkey %q used by %q and %q", ErrInvalidMenuItem, item.Hotkey, other, item.Label)
			}
			seen[item.Hotkey] = item.Label
		}
	}
	return Menu{Sections: sections}, nil
}

// Items returns every item in display order.
func (m Menu) Items() []MenuItem {
	var items []MenuItem
	for _, s := range m.Sections {
		items = append(items, s.Items...)
	}
	return items
}

// IndexOfHotkey returns the flattened index of the item bound to r, or -1.
func (m Menu) IndexOfHotkey(r rune) int {
	r = unicode.ToLower(r)
	for i, item := range m.Items() {
		if item.Hotkey != 0 && item.Hotkey == r {
			return i
		}
	}
	return -1
}

// GatewayMenu is the top-level menu.
func GatewayMenu() Menu {
	m, err := NewMenu(
		NewMenuSection("Masters",
			MustMenuItem("Ledgers", 'l', OpenPage{Page: PageLedgers}),
			MustMenuItem("Account Groups", 'g', OpenPage{Page: PageGroups}),
			MustMenuItem("Create Ledger", 'c', OpenPage{Page: PageLedgerForm}),
		),
		NewMenuSection("Transactions",
			MustMenuItem("Day Book", 'd', OpenPage{Page: PageDayBook}),
		),
		NewMenuSection("Reports",
			MustMenuItem("Trial Balance", 't', OpenReport{Report: ReportTrialBalance}),
		),
		NewMenuSection("Utilities",
			MustMenuItem("Amount in Words", 'w', RunUtility{Utility: UtilityAmountWords}),
			MustMenuItem("Quit", 'q', Quit{}),
		),
	)
	if err != nil {
		panic(err)
	}
	return m
}
