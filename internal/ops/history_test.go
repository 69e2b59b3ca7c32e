package ops

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hpungsan/darek/internal/errors"
)

func TestHistory_Pagination(t *testing.T) {
	g, database := testGateway(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		at := fixedNow.Add(time.Duration(i) * time.Minute)
		_, err := g.WithClock(func() time.Time { return at }).AddCommandHistory(ctx, HistoryInput{
			UserID:      "u1",
			CommandText: fmt.Sprintf("command %d", i),
			Success:     true,
		})
		if err != nil {
			t.Fatalf("AddCommandHistory failed: %v", err)
		}
	}

	out, err := History(ctx, database, HistoryListInput{UserID: "u1", Limit: 2})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(out.Items) != 2 || out.Items[0].CommandText != "command 4" {
		t.Errorf("Items = %+v, want newest first", out.Items)
	}
	if !out.Pagination.HasMore || out.Pagination.Total != 5 || out.Pagination.Limit != 2 {
		t.Errorf("Pagination = %+v", out.Pagination)
	}
	if out.Sort != "timestamp_desc" {
		t.Errorf("Sort = %q", out.Sort)
	}

	out, err = History(ctx, database, HistoryListInput{UserID: "u1", Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(out.Items) != 1 || out.Pagination.HasMore {
		t.Errorf("last page = %+v / %+v", out.Items, out.Pagination)
	}
}

func TestHistory_EmptyAndDefaults(t *testing.T) {
	database := openTestDB(t)

	out, err := History(context.Background(), database, HistoryListInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if out.Items == nil {
		t.Error("Items = nil, want empty slice")
	}
	if out.Pagination.Limit != DefaultListLimit {
		t.Errorf("Limit = %d, want %d", out.Pagination.Limit, DefaultListLimit)
	}

	if _, err := History(context.Background(), database, HistoryListInput{}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}
