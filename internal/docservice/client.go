package docservice

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/trip-management/internal"
	"github.com/frahmantamala/trip-management/internal/document"
)

// Client talks to the external document service that renders PDF templates
// and sends mail on our behalf.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg internal.DocServiceConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// RenderTemplate posts the template fields and returns the rendered PDF
// bytes. The service replies with the document base64-encoded.
func (c *Client) RenderTemplate(ctx context.Context, fields document.TemplateFields) ([]byte, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template fields: %w", err)
	}

	ctx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document service returned status %d", resp.StatusCode)
	}

	var apiResponse struct {
		Data string `json:"Data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to decode render response: %w", err)
	}

	pdf, err := base64.StdEncoding.DecodeString(apiResponse.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered document: %w", err)
	}

	c.logger.Info("document rendered", "size_bytes", len(pdf))
	return pdf, nil
}

// SendMail posts a single message to the document service's mail endpoint.
func (c *Client) SendMail(ctx context.Context, to, senderName, subject, body string) error {
	payload := map[string]string{
		"AddressTo":  to,
		"SenderName": senderName,
		"Subject":    subject,
		"Body":       body,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	ctx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mail", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("document service returned status %d", resp.StatusCode)
	}

	return nil
}
