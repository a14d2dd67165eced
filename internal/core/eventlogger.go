package core

// EventLogger is the subset of the observability event log that core
// services need. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// Event types written by the exporter.
const (
	EventExportStarted   = "export.started"
	EventExportCompleted = "export.completed"
	EventListCreated     = "list.created"
	EventListReused      = "list.reused"
	EventCardCreated     = "card.created"
	EventCardFailed      = "card.failed"
)
