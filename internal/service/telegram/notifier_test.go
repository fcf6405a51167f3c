package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"RankPull/internal/domain/models"
	xhttp "RankPull/pkg/http"
	xlogger "RankPull/pkg/logger"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func testNotifier(t *testing.T, apiBase string) *Notifier {
	t.Helper()
	n, err := New(xhttp.NewClient(), testLogger(t), "token", "chat", "DAILY", "PNL", time.Millisecond)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	tn := n.(*Notifier)
	tn.apiBase = apiBase
	return tn
}

func positions(n int) []models.PositionRecord {
	out := make([]models.PositionRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.PositionRecord{
			Symbol: fmt.Sprintf("SYM%dUSDT", i),
			Side:   "Long",
			PNL:    float64(i),
		})
	}
	return out
}

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := New(xhttp.NewClient(), testLogger(t), "", "chat", "DAILY", "PNL", 0); err == nil {
		t.Fatalf("empty token accepted")
	}
	if _, err := New(xhttp.NewClient(), testLogger(t), "token", "", "DAILY", "PNL", 0); err == nil {
		t.Fatalf("empty chat id accepted")
	}
}

func TestChunkPositions(t *testing.T) {
	if got := chunkPositions(nil, 20); got != nil {
		t.Fatalf("empty input: got %v", got)
	}
	if got := chunkPositions(positions(20), 20); len(got) != 1 || len(got[0]) != 20 {
		t.Fatalf("exact fit: got %d chunks", len(got))
	}
	got := chunkPositions(positions(21), 20)
	if len(got) != 2 || len(got[0]) != 20 || len(got[1]) != 1 {
		t.Fatalf("21 positions: got %d chunks (%d, %d)", len(got), len(got[0]), len(got[len(got)-1]))
	}
	got = chunkPositions(positions(45), 20)
	if len(got) != 3 || len(got[2]) != 5 {
		t.Fatalf("45 positions: got %d chunks", len(got))
	}
}

func TestSendDetailsSplitsLongBook(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	n := testNotifier(t, srv.URL)
	rs := &models.ResultSet{
		GeneratedAt: time.Now(),
		Traders: []*models.TraderReport{
			{Rank: 1, Name: "whale", Positions: models.PositionBook{Positions: positions(21)}},
		},
	}

	if err := n.SendDetails(context.Background(), rs); err != nil {
		t.Fatalf("send details: %v", err)
	}
	if got := atomic.LoadInt64(&requests); got != 2 {
		t.Fatalf("messages sent: got %d, want 2", got)
	}
}

func TestSendRetriesOnceThenSucceeds(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&requests, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	n := testNotifier(t, srv.URL)
	if err := n.SendError(context.Background(), "something broke"); err != nil {
		t.Fatalf("retry should have recovered: %v", err)
	}
	if got := atomic.LoadInt64(&requests); got != 2 {
		t.Fatalf("requests: got %d, want 2", got)
	}
}

func TestSendGivesUpAfterRetry(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := testNotifier(t, srv.URL)
	if err := n.SendError(context.Background(), "something broke"); err == nil {
		t.Fatalf("expected error after exhausted retry")
	}
	if got := atomic.LoadInt64(&requests); got != 2 {
		t.Fatalf("requests: got %d, want 2", got)
	}
}

func TestSendSurfacesAPIRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false,"description":"chat not found"}`)
	}))
	defer srv.Close()

	n := testNotifier(t, srv.URL)
	err := n.SendError(context.Background(), "x")
	if err == nil {
		t.Fatalf("expected error for ok=false response")
	}
}
