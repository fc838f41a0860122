package cmd

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ledgerdesk/internal/eventbus"
	"ledgerdesk/internal/fetch"
	"ledgerdesk/internal/logging"
	"ledgerdesk/internal/logic"
	"ledgerdesk/internal/ui"
)

// uiEvents are the bus events the UI reacts to.
var uiEvents = []eventbus.EventType{
	eventbus.EventDataLoaded,
	eventbus.EventFetchFailed,
	eventbus.EventLedgerCreated,
	eventbus.EventSessionExpired,
	eventbus.EventError,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	closeLog, err := logging.Setup(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := loggedInClient(cfg)
	if err != nil {
		return err
	}

	bus := eventbus.New()
	defer bus.Close()

	ledgers := logic.NewMemoryLedgerStore()
	groups := logic.NewMemoryGroupStore()
	svc := fetch.NewService(bus, client, ledgers, groups, fetch.Config{
		Timeout:  cfg.RequestTimeout(),
		PageSize: cfg.UI.PageSize,
	})
	defer svc.Close()

	model := ui.NewModel(ui.NewEnv(bus, cfg, ledgers, groups))
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	fwd := newEventForwarder(100, p.Send)
	var unsubs []func()
	for _, t := range uiEvents {
		unsubs = append(unsubs, bus.Subscribe(t, fwd.forward))
	}

	slog.Info("starting ui", "api", client.BaseURL(), "company", cfg.Company)
	_, runErr := p.Run()

	for _, unsub := range unsubs {
		unsub()
	}
	svc.Close()
	bus.Close()
	fwd.stop()

	if runErr != nil {
		slog.Error("ui exited with error", "error", runErr)
		return fmt.Errorf("running ui: %w", runErr)
	}
	slog.Info("ui exited normally")
	return nil
}
