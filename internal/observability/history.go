package observability

import (
	"fmt"
	"time"
)

// History aggregates export activity recorded in the event log.
type History struct {
	Runs         int            `json:"runs"`
	CardsCreated int            `json:"cards_created"`
	CardsFailed  int            `json:"cards_failed"`
	ListsCreated int            `json:"lists_created"`
	ListsReused  int            `json:"lists_reused"`
	EventCount   int            `json:"event_count"`
	CardsByList  map[string]int `json:"cards_by_list"`
	LastRunID    string         `json:"last_run_id,omitempty"`
	OldestEvent  *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent  *time.Time     `json:"newest_event,omitempty"`
}

// HistoryCalculator derives export history from the event log.
type HistoryCalculator interface {
	Calculate(since time.Time) (*History, error)
}

type historyCalculator struct {
	eventLog EventLog
}

// NewHistoryCalculator creates a HistoryCalculator reading from eventLog.
func NewHistoryCalculator(eventLog EventLog) HistoryCalculator {
	return &historyCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
func (hc *historyCalculator) Calculate(since time.Time) (*History, error) {
	events, err := hc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for history: %w", err)
	}

	h := &History{CardsByList: make(map[string]int)}
	h.EventCount = len(events)

	for i, event := range events {
		t := event.Time
		if i == 0 {
			h.OldestEvent = &t
		}
		h.NewestEvent = &t

		switch event.Type {
		case "export.started":
			h.Runs++
			h.LastRunID = event.RunID
		case "card.created":
			h.CardsCreated++
			if list, ok := event.Data["list"].(string); ok {
				h.CardsByList[list]++
			}
		case "card.failed":
			h.CardsFailed++
		case "list.created":
			h.ListsCreated++
		case "list.reused":
			h.ListsReused++
		}
	}

	return h, nil
}
