package binance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	xhttp "RankPull/pkg/http"
)

func TestFetchLeaderboardAssignsRankFromOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pathLeaderboardRank {
			t.Errorf("path: got %q", r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["tradeType"] != "PERPETUAL" || body["statisticsType"] != "PNL" {
			t.Errorf("request body: %v", body)
		}
		fmt.Fprint(w, `{"code":"000000","success":true,"data":[
			{"encryptedUid":"aaa","nickName":"First"},
			{"encryptedUid":"bbb","nickName":"Second"},
			{"encryptedUid":"ccc","nickName":"Third"}
		]}`)
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "PERPETUAL", "PNL", "DAILY")
	entries, err := c.FetchLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("fetch leaderboard: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("entries: got %d, want 3", len(entries))
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Fatalf("rank at index %d: got %d", i, e.Rank)
		}
	}
	if entries[0].TraderID != "aaa" || entries[0].DisplayName != "First" {
		t.Fatalf("first entry: %+v", entries[0])
	}
}

func TestFetchPerformanceParsesStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pathOtherPerformance {
			t.Errorf("path: got %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"success":true,"data":{
			"lastTradeTime":1700000000000,
			"performanceRetList":[
				{"periodType":"DAILY","statisticsType":"ROI","value":0.05,"rank":3},
				{"periodType":"ALL","statisticsType":"PNL","value":123456.78,"rank":1}
			]
		}}`)
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "PERPETUAL", "PNL", "DAILY")
	perf, err := c.FetchPerformance(context.Background(), "aaa")
	if err != nil {
		t.Fatalf("fetch performance: %v", err)
	}
	if perf.LastTradeTime != 1700000000000 {
		t.Fatalf("last trade time: got %d", perf.LastTradeTime)
	}
	if len(perf.Stats) != 2 || perf.Stats[1].Value != 123456.78 {
		t.Fatalf("stats: %+v", perf.Stats)
	}
}

func TestFetchPositionsParsesBook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{
			"updateTimeStamp":1700000000000,
			"otherPositionRetList":[
				{"symbol":"BTCUSDT","amount":-1.5,"leverage":20,"entryPrice":27000.1,"markPrice":26950.2,"pnl":74.85,"roe":0.05,"updateTimeStamp":1700000000000}
			]
		}}`)
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "PERPETUAL", "PNL", "DAILY")
	book, err := c.FetchPositions(context.Background(), "aaa")
	if err != nil {
		t.Fatalf("fetch positions: %v", err)
	}
	if len(book.Positions) != 1 {
		t.Fatalf("positions: got %d", len(book.Positions))
	}
	if p := book.Positions[0]; p.Symbol != "BTCUSDT" || p.Amount != -1.5 || p.Leverage != 20 {
		t.Fatalf("position: %+v", p)
	}
}

func TestFetchLeaderboardProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "PERPETUAL", "PNL", "DAILY")
	_, err := c.FetchLeaderboard(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if kind := xhttp.KindOf(err); kind != xhttp.KindProtocol {
		t.Fatalf("error kind: got %v", kind)
	}
	var fe *xhttp.FetchError
	if !errors.As(err, &fe) || fe.Status != http.StatusServiceUnavailable {
		t.Fatalf("fetch error: %+v", err)
	}
}

func TestFetchLeaderboardProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"100001","message":"invalid param","success":false}`)
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "PERPETUAL", "PNL", "DAILY")
	_, err := c.FetchLeaderboard(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if kind := xhttp.KindOf(err); kind != xhttp.KindUnexpected {
		t.Fatalf("error kind: got %v", kind)
	}
}

func TestFetchLeaderboardTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(xhttp.NewClient(), srv.URL, "PERPETUAL", "PNL", "DAILY")
	_, err := c.FetchLeaderboard(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if kind := xhttp.KindOf(err); kind != xhttp.KindTransport {
		t.Fatalf("error kind: got %v", kind)
	}
}

func TestFetchLeaderboardEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "PERPETUAL", "PNL", "DAILY")
	_, err := c.FetchLeaderboard(context.Background())
	if err == nil {
		t.Fatalf("expected error for empty data")
	}
}
