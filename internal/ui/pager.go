package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// Pager shows long text full screen and returns when the user quits it.
type Pager interface {
	Show(content string) error
}

// OvPager runs the ov pager, handing it the terminal for the duration.
type OvPager struct {
	program *tea.Program
}

// NewOvPager creates a pager that borrows the terminal from program.
func NewOvPager(program *tea.Program) *OvPager {
	return &OvPager{program: program}
}

// Show releases the terminal, runs ov over content and restores the
// terminal afterwards.
func (o *OvPager) Show(content string) error {
	if o.program == nil {
		return fmt.Errorf("pager: program not set")
	}

	if err := o.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// ov needs a moment to give the terminal back
		time.Sleep(100 * time.Millisecond)
		_ = o.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
