package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rentmax/journeyd/internal/journey"
)

const defaultHTTPTimeout = 10 * time.Second

// AppsScript posts journey records to a Google Apps Script web app backed
// by a spreadsheet. The script acknowledges a stored row with
// {"result":"success"}; anything else is a delivery failure.
type AppsScript struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewAppsScript(url string, logger *slog.Logger) *AppsScript {
	return &AppsScript{
		url:    url,
		client: &http.Client{Timeout: defaultHTTPTimeout},
		logger: logger,
	}
}

func (a *AppsScript) Name() string { return "apps-script" }

func (a *AppsScript) Deliver(ctx context.Context, rec *journey.Record) error {
	body, err := json.Marshal(rec.Flatten())
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("post record: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("apps script HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var ack struct {
		Result string `json:"result"`
		Error  string `json:"error,omitempty"`
	}
	if err := json.Unmarshal(respBody, &ack); err != nil {
		return fmt.Errorf("parse ack: %w", err)
	}
	if ack.Result != "success" {
		if ack.Error != "" {
			return fmt.Errorf("apps script rejected record: %s", ack.Error)
		}
		return fmt.Errorf("apps script rejected record: result=%q", ack.Result)
	}

	a.logger.Info("record delivered",
		"sink", a.Name(),
		"record_id", rec.ID.String(),
		"username", rec.Username,
		"flow", string(rec.Flow),
	)
	return nil
}
