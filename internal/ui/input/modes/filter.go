package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"ledgerdesk/internal/ui/input/types"
)

// FilterMode edits the list filter. Each keystroke re-filters.
type FilterMode struct {
	textMode
}

func NewFilterMode(field *textinput.Model) *FilterMode {
	return &FilterMode{textMode: newTextMode(types.ModeFilter, "filter", field)}
}
