package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valter-silva-au/mdboard/pkg/models"
)

// Default pauses between card creation calls, per export mode.
const (
	DefaultSingleDelay  = 200 * time.Millisecond
	DefaultGroupedDelay = 180 * time.Millisecond
)

// Exporter materializes work items as cards on the remote board.
type Exporter interface {
	Export(ctx context.Context, items []models.WorkItem) (*models.ExportResult, error)
}

// ExportOptions configures an Exporter. A non-empty ListID selects
// single-destination mode.
type ExportOptions struct {
	ListID       string
	ListName     string
	SingleDelay  time.Duration
	GroupedDelay time.Duration

	Out    io.Writer
	Logger *zap.SugaredLogger
	Events EventLogger
	// Sleep waits between calls. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

type boardExporter struct {
	client BoardClient
	opts   ExportOptions
}

// NewExporter creates an Exporter that issues calls through client one at a time.
func NewExporter(client BoardClient, opts ExportOptions) Exporter {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	return &boardExporter{client: client, opts: opts}
}

// Export creates one card per item. A failed card is logged and counted,
// never fatal; failing to fetch or create a list aborts the run.
func (e *boardExporter) Export(ctx context.Context, items []models.WorkItem) (*models.ExportResult, error) {
	result := &models.ExportResult{RunID: uuid.NewString(), Total: len(items)}
	if len(items) == 0 {
		fmt.Fprintln(e.opts.Out, "No TODO items found to export.")
		return result, nil
	}

	mode := "grouped"
	if e.opts.ListID != "" {
		mode = "single"
	}
	e.logEvent(EventExportStarted, map[string]any{"run_id": result.RunID, "mode": mode, "items": len(items)})

	var err error
	if e.opts.ListID != "" {
		err = e.exportSingle(ctx, items, result)
	} else {
		err = e.exportGrouped(ctx, items, result)
	}

	e.logEvent(EventExportCompleted, map[string]any{
		"run_id":  result.RunID,
		"mode":    mode,
		"total":   result.Total,
		"created": result.Created,
		"failed":  result.Failed,
		"lists":   result.Lists,
	})
	return result, err
}

func (e *boardExporter) exportSingle(ctx context.Context, items []models.WorkItem, result *models.ExportResult) error {
	fmt.Fprintf(e.opts.Out, "Found %d items. Creating cards in provided list %s", len(items), e.opts.ListID)
	if e.opts.ListName != "" {
		fmt.Fprintf(e.opts.Out, " (%s)", e.opts.ListName)
	}
	fmt.Fprintln(e.opts.Out, "...")

	result.Lists = 1
	p := pacer{sleep: e.opts.Sleep, delay: e.opts.SingleDelay}
	for _, item := range items {
		if err := p.wait(ctx); err != nil {
			return err
		}
		if err := e.createCard(ctx, e.opts.ListID, "", item, result); err != nil {
			e.opts.Logger.Errorf("Failed to create card: %s", item.Title)
			e.opts.Logger.Error(err)
		}
	}

	fmt.Fprintf(e.opts.Out, "Done. Created %d/%d cards.\n", result.Created, result.Total)
	return nil
}

func (e *boardExporter) exportGrouped(ctx context.Context, items []models.WorkItem, result *models.ExportResult) error {
	groups := GroupByList(items)

	existing, err := e.client.GetOpenLists(ctx)
	if err != nil {
		return fmt.Errorf("fetching open lists: %w", err)
	}
	cache := &listCache{client: e.client, lists: existing}

	fmt.Fprintf(e.opts.Out, "Found %d items across %d groups. Creating lists and cards...\n", len(items), len(groups))

	p := pacer{sleep: e.opts.Sleep, delay: e.opts.GroupedDelay}
	for _, group := range groups {
		listID, created, err := cache.resolve(ctx, group.ListName)
		if err != nil {
			return fmt.Errorf("ensuring list %q: %w", group.ListName, err)
		}
		eventType := EventListReused
		if created {
			eventType = EventListCreated
		}
		e.logEvent(eventType, map[string]any{"run_id": result.RunID, "list": group.ListName, "list_id": listID})
		result.Lists++

		fmt.Fprintf(e.opts.Out, "Using list: %s (%s) – %d items\n", group.ListName, listID, len(group.Items))
		for _, item := range group.Items {
			if err := p.wait(ctx); err != nil {
				return err
			}
			if err := e.createCard(ctx, listID, group.ListName, item, result); err != nil {
				e.opts.Logger.Errorf("Failed to create card in %s: %s", group.ListName, item.Title)
				e.opts.Logger.Error(err)
			}
		}
	}

	fmt.Fprintf(e.opts.Out, "Done. Created %d/%d cards in %d lists.\n", result.Created, result.Total, len(groups))
	return nil
}

// createCard issues one card creation and records the outcome.
func (e *boardExporter) createCard(ctx context.Context, listID, listName string, item models.WorkItem, result *models.ExportResult) error {
	data := map[string]any{"run_id": result.RunID, "list_id": listID, "title": item.Title}
	if listName != "" {
		data["list"] = listName
	}

	card, err := e.client.CreateCard(ctx, listID, item.Title, item.Description)
	if err != nil {
		result.Failed++
		data["error"] = err.Error()
		e.logEvent(EventCardFailed, data)
		return err
	}

	result.Created++
	if card != nil && card.ID != "" {
		data["card_id"] = card.ID
	}
	e.logEvent(EventCardCreated, data)
	return nil
}

func (e *boardExporter) logEvent(eventType string, data map[string]any) {
	if e.opts.Events == nil {
		return
	}
	if err := e.opts.Events.LogEvent(eventType, data); err != nil {
		e.opts.Logger.Debugw("event log write failed", "type", eventType, "error", err)
	}
}

// pacer inserts a fixed delay between consecutive calls.
type pacer struct {
	sleep  func(ctx context.Context, d time.Duration) error
	delay  time.Duration
	called bool
}

func (p *pacer) wait(ctx context.Context) error {
	if !p.called {
		p.called = true
		return nil
	}
	if p.delay <= 0 {
		return ctx.Err()
	}
	return p.sleep(ctx, p.delay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
