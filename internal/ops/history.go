package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/darek/internal/db"
	"github.com/hpungsan/darek/internal/record"
)

// HistoryListInput contains parameters for the History operation.
type HistoryListInput struct {
	UserID string // required
	Limit  int    // default: 20, max: 100
	Offset int    // default: 0
}

// HistoryOutput contains the result of the History operation.
type HistoryOutput struct {
	Items      []record.CommandHistory `json:"items"`
	Pagination Pagination              `json:"pagination"`
	Sort       string                  `json:"sort"`
}

// History returns a page of the user's command history, newest first.
func History(ctx context.Context, database *sql.DB, input HistoryListInput) (*HistoryOutput, error) {
	userID, err := requireUser(input.UserID)
	if err != nil {
		return nil, err
	}
	limit, offset := clampPage(input.Limit, input.Offset)

	items, total, err := db.ListCommandHistory(ctx, database, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	// Ensure we return an empty array rather than nil
	if items == nil {
		items = []record.CommandHistory{}
	}

	return &HistoryOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
		Sort: "timestamp_desc",
	}, nil
}
