package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"RankPull/internal/domain/models"
)

type recordingNotifier struct {
	calls     []string
	errors    []string
	sendErr   error
	detailErr error
}

func (r *recordingNotifier) SendSummary(ctx context.Context, rs *models.ResultSet) error {
	r.calls = append(r.calls, "summary")
	return r.sendErr
}

func (r *recordingNotifier) SendDetails(ctx context.Context, rs *models.ResultSet) error {
	r.calls = append(r.calls, "details")
	return r.detailErr
}

func (r *recordingNotifier) SendError(ctx context.Context, message string) error {
	r.calls = append(r.calls, "error")
	r.errors = append(r.errors, message)
	return nil
}

func newTestRunner(t *testing.T, src *fakeSource, n *recordingNotifier) *ReportRunner {
	t.Helper()
	b := NewReportBuilder(src, nopMetrics{}, testLogger(t), 10, models.LongPositive)
	return NewReportRunner(b, n, nil, nil, 0, nopMetrics{}, testLogger(t))
}

func TestHandleReturnsEventUnchanged(t *testing.T) {
	src := &fakeSource{entries: testEntries(3)}
	n := &recordingNotifier{}
	r := newTestRunner(t, src, n)

	event := json.RawMessage(`{"source":"schedule","id":42}`)
	out, err := r.Handle(context.Background(), event)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !bytes.Equal(out, event) {
		t.Fatalf("event mutated: %s", out)
	}
}

func TestHandleSummaryBeforeDetails(t *testing.T) {
	src := &fakeSource{entries: testEntries(2)}
	n := &recordingNotifier{}
	r := newTestRunner(t, src, n)

	if _, err := r.Handle(context.Background(), json.RawMessage(`{}`)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(n.calls) != 2 || n.calls[0] != "summary" || n.calls[1] != "details" {
		t.Fatalf("call order: %v", n.calls)
	}
}

func TestHandleFatalFailureSendsOneErrorNotification(t *testing.T) {
	src := &fakeSource{leaderboardErr: fmt.Errorf("leaderboard down")}
	n := &recordingNotifier{}
	r := newTestRunner(t, src, n)

	event := json.RawMessage(`{"source":"schedule"}`)
	out, err := r.Handle(context.Background(), event)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !bytes.Equal(out, event) {
		t.Fatalf("event mutated on failure: %s", out)
	}
	if len(n.errors) != 1 {
		t.Fatalf("error notifications: got %d, want 1", len(n.errors))
	}
	for _, call := range n.calls {
		if call == "summary" || call == "details" {
			t.Fatalf("report sent despite fatal failure: %v", n.calls)
		}
	}
}

func TestHandleNotifierFailureIsSwallowed(t *testing.T) {
	src := &fakeSource{entries: testEntries(2)}
	n := &recordingNotifier{sendErr: fmt.Errorf("telegram down"), detailErr: fmt.Errorf("telegram down")}
	r := newTestRunner(t, src, n)

	if _, err := r.Handle(context.Background(), json.RawMessage(`{}`)); err != nil {
		t.Fatalf("send failures must not fail the invocation: %v", err)
	}
	if len(n.calls) != 2 {
		t.Fatalf("both sends should still be attempted: %v", n.calls)
	}
}

func TestHandleWithoutNotifier(t *testing.T) {
	src := &fakeSource{entries: testEntries(1)}
	b := NewReportBuilder(src, nopMetrics{}, testLogger(t), 10, models.LongPositive)
	r := NewReportRunner(b, nil, nil, nil, 0, nopMetrics{}, testLogger(t))

	if _, err := r.Handle(context.Background(), json.RawMessage(`{}`)); err != nil {
		t.Fatalf("handle without notifier: %v", err)
	}
}
