package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

type mockReportStore struct {
	dailyCountsFunc func(ctx context.Context, start, end time.Time) (map[string]int, error)
}

func (m *mockReportStore) DailyCounts(ctx context.Context, start, end time.Time) (map[string]int, error) {
	if m.dailyCountsFunc != nil {
		return m.dailyCountsFunc(ctx, start, end)
	}
	return map[string]int{}, nil
}

func newReportContext(t *testing.T, rawQuery string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/reports/lounge-usage?"+rawQuery, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRangeStart(t *testing.T) {
	end := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		rangeKind string
		want      time.Time
		wantOK    bool
	}{
		{"last_7_days", "last_7_days", time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), true},
		{"last_30_days", "last_30_days", time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), true},
		{"specific_month rejected", "specific_month", time.Time{}, false},
		{"unknown falls back to 7 days", "quarterly", time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rangeStart(tt.rangeKind, end)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("start = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFillDailyCounts(t *testing.T) {
	start := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	counts := map[string]int{
		"2025-06-05": 3,
		"2025-06-10": 1,
	}

	got := fillDailyCounts(start, end, counts)
	if len(got) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(got))
	}
	if got[0].Date != "2025-06-04" || got[6].Date != "2025-06-10" {
		t.Errorf("range edges wrong: first=%s last=%s", got[0].Date, got[6].Date)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date <= got[i-1].Date {
			t.Errorf("dates not ascending at %d: %s then %s", i, got[i-1].Date, got[i].Date)
		}
	}
	total := 0
	for _, d := range got {
		total += d.TotalEntries
	}
	if total != 4 {
		t.Errorf("bucket sum = %d, want 4", total)
	}
	if got[1].TotalEntries != 3 {
		t.Errorf("2025-06-05 count = %d, want 3", got[1].TotalEntries)
	}
	if got[2].TotalEntries != 0 {
		t.Errorf("empty day count = %d, want 0", got[2].TotalEntries)
	}
}

func TestLoungeUsageSevenBuckets(t *testing.T) {
	h := NewReportHandler(&mockReportStore{
		dailyCountsFunc: func(ctx context.Context, start, end time.Time) (map[string]int, error) {
			return map[string]int{"2025-06-08": 2}, nil
		},
	})
	h.Now = func() time.Time { return time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC) }

	c, rec := newReportContext(t, "date_range=last_7_days")
	if err := h.LoungeUsage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		StartDate string     `json:"start_date"`
		EndDate   string     `json:"end_date"`
		Data      []dayCount `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.StartDate != "2025-06-04" || body.EndDate != "2025-06-10" {
		t.Errorf("range = %s..%s, want 2025-06-04..2025-06-10", body.StartDate, body.EndDate)
	}
	if len(body.Data) != 7 {
		t.Fatalf("expected 7 daily buckets, got %d", len(body.Data))
	}
}

func TestLoungeUsageBadDates(t *testing.T) {
	h := NewReportHandler(&mockReportStore{})

	for _, q := range []string{"end_date=10-06-2025", "start_date=notadate"} {
		c, rec := newReportContext(t, q)
		if err := h.LoungeUsage(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestLoungeUsageSpecificMonthRejected(t *testing.T) {
	h := NewReportHandler(&mockReportStore{})
	c, rec := newReportContext(t, "date_range=specific_month")
	if err := h.LoungeUsage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLoungeUsageExplicitStartOverridesRange(t *testing.T) {
	var gotStart, gotEnd time.Time
	h := NewReportHandler(&mockReportStore{
		dailyCountsFunc: func(ctx context.Context, start, end time.Time) (map[string]int, error) {
			gotStart, gotEnd = start, end
			return nil, nil
		},
	})
	h.Now = func() time.Time { return time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC) }

	c, rec := newReportContext(t, "date_range=last_30_days&start_date=2025-06-01&end_date=2025-06-03")
	if err := h.LoungeUsage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotStart.Format(dateLayout) != "2025-06-01" {
		t.Errorf("query start = %v, want 2025-06-01", gotStart)
	}
	if gotEnd.Before(time.Date(2025, 6, 3, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("query end %v does not cover the whole end day", gotEnd)
	}
	var body struct {
		Data []dayCount `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Data) != 3 {
		t.Errorf("expected 3 buckets for explicit range, got %d", len(body.Data))
	}
}
