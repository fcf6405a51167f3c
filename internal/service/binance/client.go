package binance

import (
	"context"
	"encoding/json"

	"RankPull/internal/domain/models"
	drepo "RankPull/internal/domain/repository"
	xhttp "RankPull/pkg/http"
)

const (
	pathLeaderboardRank  = "/getLeaderboardRank"
	pathOtherPerformance = "/getOtherPerformance"
	pathOtherPosition    = "/getOtherPosition"

	// The public leaderboard endpoints reject requests without a browser UA.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/107.0.0.0 Safari/537.36"
)

// Client implements a LeaderboardSource backed by the Binance futures
// public leaderboard API.
type Client struct {
	http           *xhttp.Client
	baseURL        string
	tradeType      string
	statisticsType string
	periodType     string
}

// envelope is the provider's standard JSON response wrapper.
type envelope struct {
	Code          string          `json:"code"`
	Message       string          `json:"message"`
	MessageDetail string          `json:"messageDetail"`
	Data          json.RawMessage `json:"data"`
	Success       bool            `json:"success"`
}

type rankRow struct {
	EncryptedUID string `json:"encryptedUid"`
	NickName     string `json:"nickName"`
}

// New creates a new leaderboard API client.
func New(httpClient *xhttp.Client, baseURL, tradeType, statisticsType, periodType string) drepo.LeaderboardSource {
	return &Client{
		http:           httpClient,
		baseURL:        baseURL,
		tradeType:      tradeType,
		statisticsType: statisticsType,
		periodType:     periodType,
	}
}

// FetchLeaderboard returns the provider's current ranked page. Rank is
// assigned from row order, 1-based.
func (c *Client) FetchLeaderboard(ctx context.Context) ([]models.RankEntry, error) {
	body := map[string]interface{}{
		"tradeType":      c.tradeType,
		"statisticsType": c.statisticsType,
		"periodType":     c.periodType,
		"isShared":       true,
		"isTrader":       false,
	}

	var rows []rankRow
	if err := c.post(ctx, pathLeaderboardRank, body, &rows); err != nil {
		return nil, err
	}

	entries := make([]models.RankEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, models.RankEntry{
			Rank:        i + 1,
			TraderID:    row.EncryptedUID,
			DisplayName: row.NickName,
		})
	}
	return entries, nil
}

// FetchPerformance returns a trader's raw per-period statistics.
func (c *Client) FetchPerformance(ctx context.Context, traderID string) (*models.RawPerformance, error) {
	body := map[string]interface{}{
		"encryptedUid": traderID,
		"tradeType":    c.tradeType,
	}

	var perf models.RawPerformance
	if err := c.post(ctx, pathOtherPerformance, body, &perf); err != nil {
		return nil, err
	}
	return &perf, nil
}

// FetchPositions returns a trader's raw open positions.
func (c *Client) FetchPositions(ctx context.Context, traderID string) (*models.RawPositionBook, error) {
	body := map[string]interface{}{
		"encryptedUid": traderID,
		"tradeType":    c.tradeType,
	}

	var book models.RawPositionBook
	if err := c.post(ctx, pathOtherPosition, body, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// post sends a JSON request, unwraps the provider envelope, and decodes its
// data payload into dest.
func (c *Client) post(ctx context.Context, path string, body, dest interface{}) error {
	url := c.baseURL + path

	var env envelope
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    url,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"User-Agent":   browserUserAgent,
		},
		Body: body,
	}, &env)
	if err != nil {
		return err
	}

	if !env.Success {
		return xhttp.UnexpectedErrorf(url, "provider rejected request: code=%s message=%s", env.Code, env.Message)
	}
	if len(env.Data) == 0 {
		return xhttp.UnexpectedErrorf(url, "provider returned empty data")
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return xhttp.UnexpectedErrorf(url, "decode data: %v", err)
	}
	return nil
}
