// Package paypal implements the payment verifier against the PayPal REST
// API. Access tokens are obtained through the client-credentials flow and
// cached until shortly before expiry.
package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

const (
	defaultTimeout = 10 * time.Second

	// tokenExpirySlack is subtracted from the provider-reported token
	// lifetime so a token is never used in its final seconds.
	tokenExpirySlack = 60 * time.Second

	// reconciliationWindow bounds the transaction search of
	// FindCompletedByOrder. Confirmations older than this are not
	// recoverable through the reporting API query we issue.
	reconciliationWindow = 30 * 24 * time.Hour
)

// Config carries the credentials and endpoint of the PayPal environment.
type Config struct {
	BaseURL  string
	ClientID string
	Secret   string

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the PayPal REST API. It implements ports.PaymentVerifier.
type Client struct {
	baseURL    string
	clientID   string
	secret     string
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a PayPal API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("paypal base url")
	}
	if cfg.ClientID == "" {
		return nil, errs.NewValueIsRequiredError("paypal client id")
	}
	if cfg.Secret == "" {
		return nil, errs.NewValueIsRequiredError("paypal secret")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		clientID:   cfg.ClientID,
		secret:     cfg.Secret,
		httpClient: httpClient,
	}, nil
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Payer  struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
	UpdateTime string `json:"update_time"`
}

// Verify looks up a checkout order by the provider transaction id and
// reports its capture status.
func (c *Client) Verify(ctx context.Context, transactionID string) (ports.VerifiedPayment, error) {
	if transactionID == "" {
		return ports.VerifiedPayment{}, errs.NewValueIsRequiredError("transaction id")
	}

	endpoint := c.baseURL + "/v2/checkout/orders/" + url.PathEscape(transactionID)
	body, err := c.get(ctx, endpoint, "verify payment")
	if err != nil {
		return ports.VerifiedPayment{}, err
	}

	var resp orderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ports.VerifiedPayment{}, fmt.Errorf("decode paypal order: %w", err)
	}
	if resp.ID == "" {
		return ports.VerifiedPayment{}, errs.NewObjectNotFoundError("payment", transactionID)
	}

	return ports.VerifiedPayment{
		TransactionID: resp.ID,
		Status:        resp.Status,
		PayerEmail:    resp.Payer.EmailAddress,
		UpdatedAt:     parseProviderTime(resp.UpdateTime),
	}, nil
}

type transactionSearchResponse struct {
	TransactionDetails []struct {
		TransactionInfo struct {
			TransactionID          string `json:"transaction_id"`
			TransactionStatus      string `json:"transaction_status"`
			TransactionUpdatedDate string `json:"transaction_updated_date"`
			InvoiceID              string `json:"invoice_id"`
		} `json:"transaction_info"`
		PayerInfo struct {
			EmailAddress string `json:"email_address"`
		} `json:"payer_info"`
	} `json:"transaction_details"`
}

// FindCompletedByOrder searches the reporting API for a successful
// transaction carrying the order id as invoice id. Checkout submits the
// order id in that field, so a confirmation lost between provider and
// API can be recovered here.
func (c *Client) FindCompletedByOrder(ctx context.Context, orderID kernel.UUID) (ports.VerifiedPayment, error) {
	if err := orderID.Validate(); err != nil {
		return ports.VerifiedPayment{}, err
	}

	now := time.Now().UTC()
	params := url.Values{}
	params.Set("invoice_id", orderID.String())
	params.Set("transaction_status", "S")
	params.Set("fields", "transaction_info,payer_info")
	params.Set("start_date", now.Add(-reconciliationWindow).Format(time.RFC3339))
	params.Set("end_date", now.Format(time.RFC3339))

	endpoint := c.baseURL + "/v1/reporting/transactions?" + params.Encode()
	body, err := c.get(ctx, endpoint, "search payments")
	if err != nil {
		return ports.VerifiedPayment{}, err
	}

	var resp transactionSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ports.VerifiedPayment{}, fmt.Errorf("decode paypal transaction search: %w", err)
	}
	if len(resp.TransactionDetails) == 0 {
		return ports.VerifiedPayment{}, errs.NewObjectNotFoundError("payment", orderID)
	}

	detail := resp.TransactionDetails[0]
	return ports.VerifiedPayment{
		TransactionID: detail.TransactionInfo.TransactionID,
		Status:        "COMPLETED",
		PayerEmail:    detail.PayerInfo.EmailAddress,
		UpdatedAt:     parseProviderTime(detail.TransactionInfo.TransactionUpdatedDate),
	}, nil
}

func (c *Client) get(ctx context.Context, endpoint, operation string) ([]byte, error) {
	token, err := c.token(ctx, operation)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(operation, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, errs.NewObjectNotFoundError("payment", endpoint)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, errs.NewRetryableFailureErrorWithCause(operation,
			fmt.Errorf("paypal responded %d", resp.StatusCode))
	default:
		return nil, fmt.Errorf("paypal responded %d: %s", resp.StatusCode, string(body))
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) token(ctx context.Context, operation string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", form)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= http.StatusInternalServerError {
			return "", errs.NewRetryableFailureErrorWithCause(operation,
				fmt.Errorf("paypal token endpoint responded %d", resp.StatusCode))
		}
		return "", fmt.Errorf("paypal token endpoint responded %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode paypal token: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("paypal token endpoint returned no access token")
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpirySlack)
	return c.accessToken, nil
}

// classifyTransportError maps timeouts and connection failures to
// RetryableFailure so callers can answer with a retryable status.
func classifyTransportError(operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.NewRetryableFailureErrorWithCause(operation, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.NewRetryableFailureErrorWithCause(operation, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errs.NewRetryableFailureErrorWithCause(operation, err)
	}

	return err
}

func parseProviderTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}
