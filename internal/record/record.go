// Package record defines the entities owned by the Persistence Gateway.
// Every row belongs to exactly one user and is created by one handler invocation.
package record

// Kind names a persisted table.
type Kind string

const (
	KindReminder       Kind = "reminder"
	KindTodoItem       Kind = "todo_item"
	KindShoppingItem   Kind = "shopping_item"
	KindNote           Kind = "note"
	KindTimer          Kind = "timer"
	KindCommandHistory Kind = "command_history"
)

// DefaultPriority is assigned to todo items created without an explicit priority.
const DefaultPriority = "medium"

// Reminder is a task to surface at RemindAt (Unix seconds).
type Reminder struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Task      string `json:"task"`
	RemindAt  int64  `json:"remind_at"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"created_at"`
}

// TodoItem is an entry on the user's to-do list.
type TodoItem struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Task      string `json:"task"`
	Priority  string `json:"priority"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"created_at"`
}

// ShoppingItem is one atomic item on the shopping list.
type ShoppingItem struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ItemName  string `json:"item_name"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"created_at"`
}

// Note is free-form text with an optional title.
type Note struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Title     *string `json:"title,omitempty"`
	Content   string  `json:"content"`
	CreatedAt int64   `json:"created_at"`
}

// Timer is a countdown; DurationSeconds is normalized to seconds whatever the input unit.
type Timer struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	DurationSeconds int    `json:"duration_seconds"`
	StartTime       int64  `json:"start_time"`
	Active          bool   `json:"active"`
}

// CommandHistory is the append-only audit row written once per processed command.
type CommandHistory struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	CommandText string `json:"command_text"`
	Timestamp   int64  `json:"timestamp"`
	Success     bool   `json:"success"`
}
