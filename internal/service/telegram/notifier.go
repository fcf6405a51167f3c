package telegram

import (
	"context"
	"fmt"
	"time"

	"RankPull/internal/domain/models"
	drepo "RankPull/internal/domain/repository"
	xhttp "RankPull/pkg/http"
	xlogger "RankPull/pkg/logger"
)

const (
	defaultAPIBase = "https://api.telegram.org"

	// maxPositionsPerMessage bounds the position lines packed into one detail
	// message; longer books are split across continuation messages.
	maxPositionsPerMessage = 20
)

var emojis = map[string]string{
	"ALERT":   "⚠️⚠️",
	"ERROR":   "❌❌",
	"SUCCESS": "✅✅",
	"UP":      "⬆️📈",
	"DOWN":    "⬇️📉",
}

// Notifier implements a Telegram-backed reporting sink. Messages are HTML
// formatted; a failed send is retried once after retryDelay, a second failure
// is surfaced to the caller.
type Notifier struct {
	apiBase    string
	token      string
	chatID     string
	retryDelay time.Duration
	http       *xhttp.Client
	logger     *xlogger.Logger

	periodType     string
	statisticsType string
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// New creates a Telegram notifier.
func New(httpClient *xhttp.Client, l *xlogger.Logger, token, chatID, periodType, statisticsType string, retryDelay time.Duration) (drepo.Notifier, error) {
	if token == "" || chatID == "" {
		return nil, fmt.Errorf("telegram: bot token and chat id are required")
	}
	return &Notifier{
		apiBase:        defaultAPIBase,
		token:          token,
		chatID:         chatID,
		retryDelay:     retryDelay,
		http:           httpClient,
		logger:         l,
		periodType:     periodType,
		statisticsType: statisticsType,
	}, nil
}

// SendSummary delivers one message with the ranked overview.
func (n *Notifier) SendSummary(ctx context.Context, rs *models.ResultSet) error {
	return n.send(ctx, formatSummary(rs, n.periodType, n.statisticsType))
}

// SendDetails delivers per-trader detail messages. A trader whose position
// list exceeds maxPositionsPerMessage is split across several messages. Send
// failures are logged and the remaining traders are still attempted.
func (n *Notifier) SendDetails(ctx context.Context, rs *models.ResultSet) error {
	var lastErr error
	for _, t := range rs.Traders {
		for _, msg := range n.traderMessages(t) {
			if err := n.send(ctx, msg); err != nil {
				n.logger.Warn("detail message dropped",
					xlogger.Int("rank", t.Rank),
					xlogger.Error(err),
				)
				lastErr = err
			}
		}
	}
	return lastErr
}

// SendError delivers an error notification.
func (n *Notifier) SendError(ctx context.Context, message string) error {
	return n.send(ctx, emojis["ERROR"]+"  "+message)
}

// traderMessages renders one trader into one or more messages.
func (n *Notifier) traderMessages(t *models.TraderReport) []string {
	if t.Failed() {
		return []string{formatFailedTrader(t)}
	}

	chunks := chunkPositions(t.Positions.Positions, maxPositionsPerMessage)
	if len(chunks) == 0 {
		return []string{formatTraderDetail(t, nil, 0, 1)}
	}

	msgs := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		msgs = append(msgs, formatTraderDetail(t, chunk, i, len(chunks)))
	}
	return msgs
}

// send posts one message, retrying once after retryDelay.
func (n *Notifier) send(ctx context.Context, text string) error {
	err := n.sendOnce(ctx, text)
	if err == nil {
		return nil
	}

	n.logger.Warn("telegram send failed, retrying", xlogger.Error(err))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(n.retryDelay):
	}

	if err := n.sendOnce(ctx, text); err != nil {
		n.logger.Error("telegram send failed after retry", xlogger.Error(err))
		return err
	}
	return nil
}

func (n *Notifier) sendOnce(ctx context.Context, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.token)

	var resp sendMessageResponse
	err := n.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    url,
		Body: sendMessageRequest{
			ChatID:    n.chatID,
			Text:      text,
			ParseMode: "HTML",
		},
	}, &resp)
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("telegram api: %s", resp.Description)
	}
	return nil
}

// chunkPositions splits positions into slices of at most size entries.
func chunkPositions(positions []models.PositionRecord, size int) [][]models.PositionRecord {
	if len(positions) == 0 {
		return nil
	}
	chunks := make([][]models.PositionRecord, 0, (len(positions)+size-1)/size)
	for start := 0; start < len(positions); start += size {
		end := start + size
		if end > len(positions) {
			end = len(positions)
		}
		chunks = append(chunks, positions[start:end])
	}
	return chunks
}
