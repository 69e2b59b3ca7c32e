package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/darek/internal/db"
	"github.com/hpungsan/darek/internal/record"
)

// DashboardOutput is a user's stored items, grouped by kind.
type DashboardOutput struct {
	UserID        string                `json:"user_id"`
	Reminders     []record.Reminder     `json:"reminders"`
	Todos         []record.TodoItem     `json:"todos"`
	ShoppingItems []record.ShoppingItem `json:"shopping_items"`
	Notes         []record.Note         `json:"notes"`
	Timers        []record.Timer        `json:"timers"`
}

// Dashboard returns everything stored for userID: reminders soonest first,
// open to-dos, shopping items, notes newest first and the latest timers.
func Dashboard(ctx context.Context, database *sql.DB, userID string) (*DashboardOutput, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}

	out := &DashboardOutput{UserID: userID}
	if out.Reminders, err = db.ListReminders(ctx, database, userID); err != nil {
		return nil, err
	}
	if out.Todos, err = db.ListOpenTodoItems(ctx, database, userID); err != nil {
		return nil, err
	}
	if out.ShoppingItems, err = db.ListShoppingItems(ctx, database, userID); err != nil {
		return nil, err
	}
	if out.Notes, err = db.ListNotes(ctx, database, userID); err != nil {
		return nil, err
	}
	if out.Timers, err = db.ListTimers(ctx, database, userID, DashboardTimers); err != nil {
		return nil, err
	}

	// Ensure we return empty arrays rather than nil
	if out.Reminders == nil {
		out.Reminders = []record.Reminder{}
	}
	if out.Todos == nil {
		out.Todos = []record.TodoItem{}
	}
	if out.ShoppingItems == nil {
		out.ShoppingItems = []record.ShoppingItem{}
	}
	if out.Notes == nil {
		out.Notes = []record.Note{}
	}
	if out.Timers == nil {
		out.Timers = []record.Timer{}
	}
	return out, nil
}
