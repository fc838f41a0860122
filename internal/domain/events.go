package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFetchRequested        EventType = "FetchRequested"
	EventDataLoaded            EventType = "DataLoaded"
	EventFetchFailed           EventType = "FetchFailed"
	EventLedgerCreateRequested EventType = "LedgerCreateRequested"
	EventLedgerCreated         EventType = "LedgerCreated"
	EventSessionExpired        EventType = "SessionExpired"
	EventError                 EventType = "Error"
	EventConfigLoaded          EventType = "ConfigLoaded"
	EventConfigSaved           EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FetchKind names the collection a fetch asks for.
type FetchKind string

const (
	KindLedgers      FetchKind = "ledgers"
	KindGroups       FetchKind = "groups"
	KindVouchers     FetchKind = "vouchers"
	KindStatement    FetchKind = "statement"
	KindTrialBalance FetchKind = "trial-balance"
	KindCreateLedger FetchKind = "create-ledger"
)

// FetchRequestedEvent asks the fetch service to load a collection. Results
// carry the same RequestID so stale replies can be told apart.
type FetchRequestedEvent struct {
	RequestID uint64
	Kind      FetchKind
	Page      int
	PageSize  int
	LedgerID  string
}

func (e FetchRequestedEvent) Type() EventType { return EventFetchRequested }

// DataLoadedEvent carries a fetched collection. Data holds []Ledger,
// []AccountGroup, VoucherPage, LedgerStatement or TrialBalance depending
// on Kind.
type DataLoadedEvent struct {
	RequestID uint64
	Kind      FetchKind
	Data      interface{}
}

func (e DataLoadedEvent) Type() EventType { return EventDataLoaded }

// FetchFailedEvent is emitted when a fetch or mutation fails
type FetchFailedEvent struct {
	RequestID uint64
	Kind      FetchKind
	Err       error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// LedgerCreateRequestedEvent asks the fetch service to create a ledger
type LedgerCreateRequestedEvent struct {
	RequestID uint64
	Ledger    NewLedger
}

func (e LedgerCreateRequestedEvent) Type() EventType { return EventLedgerCreateRequested }

// LedgerCreatedEvent is emitted once the backend accepted a new ledger
type LedgerCreatedEvent struct {
	RequestID uint64
	Ledger    Ledger
}

func (e LedgerCreatedEvent) Type() EventType { return EventLedgerCreated }

// SessionExpiredEvent is emitted when the backend rejects the stored token
type SessionExpiredEvent struct{}

func (e SessionExpiredEvent) Type() EventType { return EventSessionExpired }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
