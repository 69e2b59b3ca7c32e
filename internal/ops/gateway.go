package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/hpungsan/darek/internal/db"
	"github.com/hpungsan/darek/internal/errors"
	"github.com/hpungsan/darek/internal/record"
)

// Valid to-do priorities.
var priorities = map[string]bool{"low": true, "medium": true, "high": true}

// Gateway is the persistence gateway: validated inserts for each record kind,
// scoped to the calling user. IDs and server-side timestamps are assigned here.
type Gateway struct {
	db  *sql.DB
	now func() time.Time
}

// NewGateway creates a Gateway over database.
func NewGateway(database *sql.DB) *Gateway {
	return &Gateway{db: database, now: time.Now}
}

// WithClock returns a copy of g that reads time from now.
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	return &Gateway{db: g.db, now: now}
}

// ReminderInput contains parameters for AddReminder.
type ReminderInput struct {
	UserID   string
	Task     string
	RemindAt time.Time
}

// AddReminder stores a reminder. RemindAt must be after the current time.
func (g *Gateway) AddReminder(ctx context.Context, input ReminderInput) (*record.Reminder, error) {
	userID, err := requireUser(input.UserID)
	if err != nil {
		return nil, err
	}
	task, err := requireText("task", input.Task)
	if err != nil {
		return nil, err
	}
	now := g.now()
	if !input.RemindAt.After(now) {
		return nil, errors.NewInvalidRequest("remind_at must be in the future")
	}

	id, err := generateULID(now)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	r := &record.Reminder{
		ID:        id,
		UserID:    userID,
		Task:      task,
		RemindAt:  input.RemindAt.Unix(),
		CreatedAt: now.Unix(),
	}
	if err := db.InsertReminder(ctx, g.db, r); err != nil {
		return nil, err
	}
	return r, nil
}

// TodoInput contains parameters for AddTodo.
type TodoInput struct {
	UserID   string
	Task     string
	Priority string // default: "medium"
}

// AddTodo stores an open to-do item.
func (g *Gateway) AddTodo(ctx context.Context, input TodoInput) (*record.TodoItem, error) {
	userID, err := requireUser(input.UserID)
	if err != nil {
		return nil, err
	}
	task, err := requireText("task", input.Task)
	if err != nil {
		return nil, err
	}
	priority := record.Normalize(input.Priority)
	if priority == "" {
		priority = record.DefaultPriority
	}
	if !priorities[priority] {
		return nil, errors.NewInvalidRequest("priority must be one of: low, medium, high")
	}

	now := g.now()
	id, err := generateULID(now)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	item := &record.TodoItem{
		ID:        id,
		UserID:    userID,
		Task:      task,
		Priority:  priority,
		CreatedAt: now.Unix(),
	}
	if err := db.InsertTodoItem(ctx, g.db, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ShoppingInput contains parameters for AddShoppingItems.
type ShoppingInput struct {
	UserID string
	Items  []string
}

// AddShoppingItems stores one row per item, all or nothing.
func (g *Gateway) AddShoppingItems(ctx context.Context, input ShoppingInput) ([]record.ShoppingItem, error) {
	userID, err := requireUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, errors.NewInvalidRequest("at least one item is required")
	}

	now := g.now()
	out := make([]record.ShoppingItem, 0, len(input.Items))
	for _, raw := range input.Items {
		name, err := requireText("item_name", raw)
		if err != nil {
			return nil, err
		}
		id, err := generateULID(now)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, record.ShoppingItem{
			ID:        id,
			UserID:    userID,
			ItemName:  name,
			CreatedAt: now.Unix(),
		})
	}
	if err := db.InsertShoppingItems(ctx, g.db, out); err != nil {
		return nil, err
	}
	return out, nil
}

// NoteInput contains parameters for AddNote.
type NoteInput struct {
	UserID  string
	Title   *string // optional
	Content string
}

// AddNote stores a note.
func (g *Gateway) AddNote(ctx context.Context, input NoteInput) (*record.Note, error) {
	userID, err := requireUser(input.UserID)
	if err != nil {
		return nil, err
	}
	content, err := requireText("content", input.Content)
	if err != nil {
		return nil, err
	}

	now := g.now()
	id, err := generateULID(now)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	n := &record.Note{
		ID:        id,
		UserID:    userID,
		Title:     cleanOptionalString(input.Title),
		Content:   content,
		CreatedAt: now.Unix(),
	}
	if err := db.InsertNote(ctx, g.db, n); err != nil {
		return nil, err
	}
	return n, nil
}

// TimerInput contains parameters for AddTimer.
type TimerInput struct {
	UserID          string
	Name            string
	DurationSeconds int
}

// AddTimer stores an active timer starting now.
func (g *Gateway) AddTimer(ctx context.Context, input TimerInput) (*record.Timer, error) {
	userID, err := requireUser(input.UserID)
	if err != nil {
		return nil, err
	}
	name, err := requireText("name", input.Name)
	if err != nil {
		return nil, err
	}
	if input.DurationSeconds <= 0 {
		return nil, errors.NewInvalidRequest("duration_seconds must be positive")
	}

	now := g.now()
	id, err := generateULID(now)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	tm := &record.Timer{
		ID:              id,
		UserID:          userID,
		Name:            name,
		DurationSeconds: input.DurationSeconds,
		StartTime:       now.Unix(),
		Active:          true,
	}
	if err := db.InsertTimer(ctx, g.db, tm); err != nil {
		return nil, err
	}
	return tm, nil
}

// HistoryInput contains parameters for AddCommandHistory.
type HistoryInput struct {
	UserID      string
	CommandText string
	Success     bool
}

// AddCommandHistory appends an audit row timestamped now.
func (g *Gateway) AddCommandHistory(ctx context.Context, input HistoryInput) (*record.CommandHistory, error) {
	userID, err := requireUser(input.UserID)
	if err != nil {
		return nil, err
	}
	text, err := requireText("command_text", input.CommandText)
	if err != nil {
		return nil, err
	}

	now := g.now()
	id, err := generateULID(now)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	h := &record.CommandHistory{
		ID:          id,
		UserID:      userID,
		CommandText: text,
		Timestamp:   now.Unix(),
		Success:     input.Success,
	}
	if err := db.InsertCommandHistory(ctx, g.db, h); err != nil {
		return nil, err
	}
	return h, nil
}
