package db

import (
	"context"
	"database/sql"

	"github.com/hpungsan/darek/internal/errors"
	"github.com/hpungsan/darek/internal/record"
)

// InsertReminder stores a new reminder.
func InsertReminder(ctx context.Context, db *sql.DB, r *record.Reminder) error {
	query := `
		INSERT INTO reminder (id, user_id, task, remind_at, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, query,
		r.ID, r.UserID, r.Task, r.RemindAt, r.Completed, r.CreatedAt,
	)
	if err != nil {
		return errors.NewPersistenceUnavailable(err)
	}
	return nil
}

// InsertTodoItem stores a new to-do item.
func InsertTodoItem(ctx context.Context, db *sql.DB, item *record.TodoItem) error {
	query := `
		INSERT INTO todo_item (id, user_id, task, priority, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, query,
		item.ID, item.UserID, item.Task, item.Priority, item.Completed, item.CreatedAt,
	)
	if err != nil {
		return errors.NewPersistenceUnavailable(err)
	}
	return nil
}

// InsertShoppingItems stores several shopping items in one transaction.
// Either every item is stored or none is.
func InsertShoppingItems(ctx context.Context, db *sql.DB, items []record.ShoppingItem) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewPersistenceUnavailable(err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shopping_item (id, user_id, item_name, completed, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.NewPersistenceUnavailable(err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, item.ID, item.UserID, item.ItemName, item.Completed, item.CreatedAt); err != nil {
			return errors.NewPersistenceUnavailable(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewPersistenceUnavailable(err)
	}
	return nil
}

// InsertNote stores a new note.
func InsertNote(ctx context.Context, db *sql.DB, n *record.Note) error {
	query := `
		INSERT INTO note (id, user_id, title, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, query,
		n.ID, n.UserID, toNullString(n.Title), n.Content, n.CreatedAt,
	)
	if err != nil {
		return errors.NewPersistenceUnavailable(err)
	}
	return nil
}

// InsertTimer stores a new timer.
func InsertTimer(ctx context.Context, db *sql.DB, tm *record.Timer) error {
	query := `
		INSERT INTO timer (id, user_id, name, duration_seconds, start_time, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, query,
		tm.ID, tm.UserID, tm.Name, tm.DurationSeconds, tm.StartTime, tm.Active,
	)
	if err != nil {
		return errors.NewPersistenceUnavailable(err)
	}
	return nil
}

// InsertCommandHistory appends an audit row.
func InsertCommandHistory(ctx context.Context, db *sql.DB, h *record.CommandHistory) error {
	query := `
		INSERT INTO command_history (id, user_id, command_text, timestamp, success)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, query,
		h.ID, h.UserID, h.CommandText, h.Timestamp, h.Success,
	)
	if err != nil {
		return errors.NewPersistenceUnavailable(err)
	}
	return nil
}

// ListReminders returns a user's reminders, soonest first.
func ListReminders(ctx context.Context, db *sql.DB, userID string) ([]record.Reminder, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, task, remind_at, completed, created_at
		FROM reminder
		WHERE user_id = ?
		ORDER BY remind_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, errors.NewPersistenceUnavailable(err)
	}
	defer rows.Close()

	var out []record.Reminder
	for rows.Next() {
		var r record.Reminder
		if err := rows.Scan(&r.ID, &r.UserID, &r.Task, &r.RemindAt, &r.Completed, &r.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewPersistenceUnavailable(err)
	}
	return out, nil
}

// ListOpenTodoItems returns a user's uncompleted to-do items, oldest first.
func ListOpenTodoItems(ctx context.Context, db *sql.DB, userID string) ([]record.TodoItem, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, task, priority, completed, created_at
		FROM todo_item
		WHERE user_id = ? AND completed = 0
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, errors.NewPersistenceUnavailable(err)
	}
	defer rows.Close()

	var out []record.TodoItem
	for rows.Next() {
		var item record.TodoItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Task, &item.Priority, &item.Completed, &item.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewPersistenceUnavailable(err)
	}
	return out, nil
}

// ListShoppingItems returns a user's shopping items in insertion order.
func ListShoppingItems(ctx context.Context, db *sql.DB, userID string) ([]record.ShoppingItem, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, item_name, completed, created_at
		FROM shopping_item
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, errors.NewPersistenceUnavailable(err)
	}
	defer rows.Close()

	var out []record.ShoppingItem
	for rows.Next() {
		var item record.ShoppingItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ItemName, &item.Completed, &item.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewPersistenceUnavailable(err)
	}
	return out, nil
}

// ListNotes returns a user's notes, newest first.
func ListNotes(ctx context.Context, db *sql.DB, userID string) ([]record.Note, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, title, content, created_at
		FROM note
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, errors.NewPersistenceUnavailable(err)
	}
	defer rows.Close()

	var out []record.Note
	for rows.Next() {
		var (
			n     record.Note
			title sql.NullString
		)
		if err := rows.Scan(&n.ID, &n.UserID, &title, &n.Content, &n.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		n.Title = fromNullString(title)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewPersistenceUnavailable(err)
	}
	return out, nil
}

// ListTimers returns a user's most recent timers, newest first.
func ListTimers(ctx context.Context, db *sql.DB, userID string, limit int) ([]record.Timer, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, name, duration_seconds, start_time, active
		FROM timer
		WHERE user_id = ?
		ORDER BY start_time DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, errors.NewPersistenceUnavailable(err)
	}
	defer rows.Close()

	var out []record.Timer
	for rows.Next() {
		var tm record.Timer
		if err := rows.Scan(&tm.ID, &tm.UserID, &tm.Name, &tm.DurationSeconds, &tm.StartTime, &tm.Active); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, tm)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewPersistenceUnavailable(err)
	}
	return out, nil
}

// ListCommandHistory returns a page of a user's command history, newest first,
// along with the total number of rows for that user.
func ListCommandHistory(ctx context.Context, db *sql.DB, userID string, limit, offset int) ([]record.CommandHistory, int, error) {
	var total int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM command_history WHERE user_id = ?`, userID,
	).Scan(&total); err != nil {
		return nil, 0, errors.NewPersistenceUnavailable(err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, command_text, timestamp, success
		FROM command_history
		WHERE user_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.NewPersistenceUnavailable(err)
	}
	defer rows.Close()

	var out []record.CommandHistory
	for rows.Next() {
		var h record.CommandHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.CommandText, &h.Timestamp, &h.Success); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewPersistenceUnavailable(err)
	}
	return out, total, nil
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
