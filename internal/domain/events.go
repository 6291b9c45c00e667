package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventTownSelectionChanged EventType = "TownSelectionChanged"
	EventTownSettingConfirmed EventType = "TownSettingConfirmed"
	EventConfigSaved          EventType = "ConfigSaved"
	EventPostStateChanged     EventType = "PostStateChanged"
	EventPostPublished        EventType = "PostPublished"
	EventMessageSent          EventType = "MessageSent"
	EventError                EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// TownSelectionChangedEvent mirrors a town selection change for listeners
// outside the owning screen (logging, analytics)
type TownSelectionChangedEvent struct {
	First  Neighborhood
	Second Neighborhood
	Active Slot
}

func (e TownSelectionChangedEvent) Type() EventType { return EventTownSelectionChanged }

// TownSettingConfirmedEvent is emitted when the user confirms a selection and it should be persisted
// Seq orders confirmations from one publisher; zero means unordered.
type TownSettingConfirmedEvent struct {
	Setting TownSetting
	Seq     uint64
}

func (e TownSettingConfirmedEvent) Type() EventType { return EventTownSettingConfirmed }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// PostStateChangedEvent is emitted when a post moves between sale states
type PostStateChangedEvent struct {
	PostID int
	From   SaleState
	To     SaleState
}

func (e PostStateChangedEvent) Type() EventType { return EventPostStateChanged }

// PostPublishedEvent is emitted when a new post is written
type PostPublishedEvent struct {
	Post Post
}

func (e PostPublishedEvent) Type() EventType { return EventPostPublished }

// MessageSentEvent is emitted when a chat message is sent
type MessageSentEvent struct {
	Room    string
	Message Message
}

func (e MessageSentEvent) Type() EventType { return EventMessageSent }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
