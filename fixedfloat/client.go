package fixedfloat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://ff.io/api/v2"
	DefaultTimeout = 30 * time.Second

	methodCurrencies = "ccies"
	methodPrice      = "price"
	methodCreate     = "create"
	methodOrder      = "order"

	headerAPIKey  = "X-API-KEY"
	headerAPISign = "X-API-SIGN"

	maxResponseSize = 8 << 20
)

var (
	errEmptyAPIKey = errors.New("api key is empty")
	errEmptyBody   = errors.New("empty response body")
)

type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to add an
// instrumented transport. The client's own timeout is left as configured.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// Client is a signed FixedFloat API client. It holds no mutable state and is
// safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	signer  *Signer
	http    *http.Client
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errEmptyAPIKey
	}
	signer, err := NewSigner(cfg.APISecret)
	if err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		signer:  signer,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListCurrencies returns every currency the exchange knows about.
func (c *Client) ListCurrencies(ctx context.Context) ([]Currency, error) {
	var out []Currency
	if err := c.post(ctx, methodCurrencies, struct{}{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Quote prices a conversion. Amount is passed through as given.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	out := new(Quote)
	if err := c.post(ctx, methodPrice, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder registers an order with the exchange. The returned token must
// be kept by the caller; it is the only way to look the order up again.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	out := new(Order)
	if err := c.post(ctx, methodCreate, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// OrderDetails fetches the current snapshot of an order.
func (c *Client) OrderDetails(ctx context.Context, id, token string) (*Order, error) {
	out := new(Order)
	if err := c.post(ctx, methodOrder, orderDetailsRequest{ID: id, Token: token}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, method string, payload, out any) error {
	body, err := encode(payload)
	if err != nil {
		return fmt.Errorf("fixedfloat: %s: encoding request: %w", method, err)
	}

	signature, err := c.signer.Sign(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerAPISign, signature)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return &TransportError{Method: method, StatusCode: res.StatusCode, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		if !isEnvelope(data) {
			return &TransportError{Method: method, StatusCode: res.StatusCode, Err: fmt.Errorf("unexpected response: %s", snippet(data))}
		}
	} else if len(bytes.TrimSpace(data)) == 0 {
		return &DecodeError{Method: method, Body: data, Err: errEmptyBody}
	}

	return decode(method, data, out)
}

func snippet(body []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	if s == "" {
		return "<empty body>"
	}
	return s
}
