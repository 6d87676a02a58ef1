package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/edumart/edumart/internal/domain/model"
)

// ErrSessionNotFound indicates the gateway no longer knows the session.
var ErrSessionNotFound = errors.New("checkout session not found")

// TooManyRequestsError represents rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// SessionParams describes a hosted checkout session to create.
// Amount is in currency minor units.
type SessionParams struct {
	Amount        int64
	Currency      string
	ProductName   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// Client exposes operations against the payment gateway.
type Client interface {
	CreateSession(ctx context.Context, params SessionParams) (*model.CheckoutSession, error)
	GetSession(ctx context.Context, id string) (*model.CheckoutSession, error)
}

// HTTPClient implements Client via the gateway REST API.
type HTTPClient struct {
	baseURL    *url.URL
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

type createSessionRequest struct {
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	ProductName   string            `json:"product_name"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	SuccessURL    string            `json:"success_url,omitempty"`
	CancelURL     string            `json:"cancel_url,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// sessionResponse mirrors the gateway JSON payload.
type sessionResponse struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

// NewHTTPClient creates a gateway client with default timeout.
func NewHTTPClient(baseURL, secretKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		secretKey: secretKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateSession requests a new hosted checkout session. The idempotency
// key guards against double charges on client retries of the same call.
func (c *HTTPClient) CreateSession(ctx context.Context, params SessionParams) (*model.CheckoutSession, error) {
	body, err := json.Marshal(createSessionRequest{
		Amount:        params.Amount,
		Currency:      params.Currency,
		ProductName:   params.ProductName,
		CustomerEmail: params.CustomerEmail,
		SuccessURL:    params.SuccessURL,
		CancelURL:     params.CancelURL,
		Metadata:      params.Metadata,
	})
	if err != nil {
		return nil, err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/checkout/sessions")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	return c.do(req)
}

// GetSession fetches the current state of a checkout session.
func (c *HTTPClient) GetSession(ctx context.Context, id string) (*model.CheckoutSession, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/checkout/sessions/", id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (*model.CheckoutSession, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data sessionResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &model.CheckoutSession{
			ID:          data.ID,
			URL:         data.URL,
			Status:      model.SessionStatus(data.Status),
			Paid:        data.PaymentStatus == "paid",
			AmountTotal: data.AmountTotal,
			Currency:    data.Currency,
			Metadata:    data.Metadata,
		}, nil
	case http.StatusNotFound:
		return nil, ErrSessionNotFound
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("gateway error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
