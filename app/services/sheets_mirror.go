package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Mirror receives a flattened copy of every stored submission.
type Mirror interface {
	Forward(ctx context.Context, record map[string]string) error
}

// SheetsMirror posts records to a spreadsheet webhook.
type SheetsMirror struct {
	webhookURL string
	client     *http.Client
	log        *zap.Logger
}

func NewSheetsMirror(webhookURL string, log *zap.Logger) *SheetsMirror {
	return &SheetsMirror{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

func (m *SheetsMirror) Forward(ctx context.Context, record map[string]string) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode mirror record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mirror request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mirror request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mirror webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	m.log.Debug("mirrored submission", zap.String("type", record["type"]), zap.Int("status", resp.StatusCode))
	return nil
}
