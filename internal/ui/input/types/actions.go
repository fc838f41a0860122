package types

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// ConfirmAction answers a y/n prompt
type ConfirmAction struct {
	Accepted bool
}

func (a ConfirmAction) Type() string { return "confirm" }

// JumpAction moves the selection to the first or last row
type JumpAction struct {
	Top bool
}

func (a JumpAction) Type() string { return "jump" }

// Page commands
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type FilterAction struct{}

func (a FilterAction) Type() string { return "filter" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

type CycleSortAction struct{}

func (a CycleSortAction) Type() string { return "cycle_sort" }

type NewLedgerAction struct{}

func (a NewLedgerAction) Type() string { return "new_ledger" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

// TurnPageAction moves through a paginated list
type TurnPageAction struct {
	Delta int
}

func (a TurnPageAction) Type() string { return "turn_page" }
