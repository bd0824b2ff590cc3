// Package expo implémente l'envoi de notifications push via le service Expo.
package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/maleksellami/caisse-backend/internal/application/notification"
	"github.com/maleksellami/caisse-backend/internal/domain"
	"github.com/maleksellami/caisse-backend/pkg/logger"
)

var _ notification.Pusher = (*Client)(nil)

const (
	pushURL = "https://exp.host/--/api/v2/push/send"

	tokenPrefix = "ExponentPushToken["

	// Limite de messages par requête imposée par Expo.
	chunkSize = 100
)

// Client client HTTP du service de push Expo.
type Client struct {
	httpClient  *http.Client
	accessToken string
	log         *logger.Logger
}

// NewClient construit le client. accessToken peut être vide (projets Expo sans
// Enhanced Security).
func NewClient(accessToken string, log *logger.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		accessToken: accessToken,
		log:         log,
	}
}

type pushMessage struct {
	To    []string          `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Sound string            `json:"sound,omitempty"`
}

type pushTicket struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type pushResponse struct {
	Data []pushTicket `json:"data"`
}

// Push envoie title/body aux tokens donnés, par lots de 100. Les tokens sans le
// préfixe Expo sont ignorés. Les tickets en erreur sont journalisés, pas remontés:
// seul un échec de transport compte comme erreur.
func (c *Client) Push(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	valid := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if strings.HasPrefix(t, tokenPrefix) {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	for start := 0; start < len(valid); start += chunkSize {
		end := start + chunkSize
		if end > len(valid) {
			end = len(valid)
		}
		if err := c.send(ctx, pushMessage{
			To:    valid[start:end],
			Title: title,
			Body:  body,
			Data:  data,
			Sound: "default",
		}); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, msg pushMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal push: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pushURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: expo push HTTP %d", domain.ErrUpstream, resp.StatusCode)
	}

	var parsed pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode push response: %w", err)
	}
	for i, ticket := range parsed.Data {
		if ticket.Status != "ok" {
			c.log.Warn().Int("index", i).Str("message", ticket.Message).Msg("expo: ticket en erreur")
		}
	}
	return nil
}
