package fixedfloat

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type capturedRequest struct {
	path    string
	body    string
	headers http.Header
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		captured.path = r.URL.Path
		captured.body = string(body)
		captured.headers = r.Header.Clone()
		mu.Unlock()
		if r.Method != http.MethodPost {
			t.Errorf("method=%s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: baseURL + "/api/v2", APIKey: "key", APISecret: "secret", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestClient_QuoteSendsExactSignedBody(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, quoteFixture)
	c := newTestClient(t, srv.URL)

	q, err := c.Quote(context.Background(), QuoteRequest{
		Type: FixedOrder, FromCcy: "BTC", ToCcy: "ETH", Direction: DirectionFrom, Amount: "0.5",
	})
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}

	wantBody := `{"type":"fixed","fromCcy":"BTC","toCcy":"ETH","direction":"from","amount":"0.5"}`
	if got.body != wantBody {
		t.Fatalf("body\n got: %s\nwant: %s", got.body, wantBody)
	}
	if got.path != "/api/v2/price" {
		t.Fatalf("path=%q, want /api/v2/price", got.path)
	}
	if got.headers.Get("X-API-KEY") != "key" {
		t.Fatalf("X-API-KEY=%q", got.headers.Get("X-API-KEY"))
	}
	if got.headers.Get("X-API-SIGN") != "1b66a2612403fe1b82bc756e34f8ebadcf1d1c50889f86e118f6ef5887b0b18a" {
		t.Fatalf("X-API-SIGN=%q", got.headers.Get("X-API-SIGN"))
	}
	if got.headers.Get("Content-Type") != "application/json; charset=UTF-8" {
		t.Fatalf("Content-Type=%q", got.headers.Get("Content-Type"))
	}
	if got.headers.Get("Accept") != "application/json" {
		t.Fatalf("Accept=%q", got.headers.Get("Accept"))
	}
	if q.From.Code != "BTC" || q.To.Code != "ETH" {
		t.Fatalf("unexpected quote legs: %+v", q)
	}
}

func TestClient_ListCurrenciesSendsEmptyObject(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, `{"code":0,"msg":"OK","data":[{"code":"BTC","coin":"BTC","network":"BTC","name":"Bitcoin","recv":1,"send":1}]}`)
	c := newTestClient(t, srv.URL)

	list, err := c.ListCurrencies(context.Background())
	if err != nil {
		t.Fatalf("ListCurrencies() error = %v", err)
	}
	if got.body != "{}" || got.path != "/api/v2/ccies" {
		t.Fatalf("body=%q path=%q", got.body, got.path)
	}
	if got.headers.Get("X-API-SIGN") != "77325902caca812dc259733aacd046b73817372c777b8d95b402647474516e13" {
		t.Fatalf("X-API-SIGN=%q", got.headers.Get("X-API-SIGN"))
	}
	if len(list) != 1 || list[0].Code != "BTC" {
		t.Fatalf("list=%+v", list)
	}
}

func TestClient_CreateOrderNewWithoutTransactions(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, `{"code":0,"msg":"OK","data":{
		"id":"ORD1","type":"fixed","email":"","status":"NEW",
		"time":{"reg":1700000000,"start":null,"finish":null,"update":1700000000,"expiration":1700001800,"left":1800},
		"from":{"code":"USDTTRC","coin":"USDT","network":"TRX","name":"Tether (TRC20)","amount":"25","address":"TXYZ","reqConfirmations":1,"maxConfirmations":20},
		"to":{"code":"BTCLN","coin":"BTC","network":"LN","name":"Bitcoin (Lightning)","amount":"0.00040000","address":"lnbc1"},
		"back":{"code":"USDTTRC","coin":"USDT","network":"TRX","name":"Tether (TRC20)"},
		"emergency":{"status":[],"choice":"NONE","repeat":"0"},
		"token":"TKN"}}`)
	c := newTestClient(t, srv.URL)

	order, err := c.CreateOrder(context.Background(), CreateOrderRequest{
		Type: FixedOrder, FromCcy: "USDTTRC", ToCcy: "BTCLN", Direction: DirectionFrom, Amount: "25", ToAddress: "lnbc1",
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if got.path != "/api/v2/create" {
		t.Fatalf("path=%q", got.path)
	}
	wantBody := `{"type":"fixed","fromCcy":"USDTTRC","toCcy":"BTCLN","direction":"from","amount":"25","toAddress":"lnbc1"}`
	if got.body != wantBody {
		t.Fatalf("body\n got: %s\nwant: %s", got.body, wantBody)
	}
	if order.Status != StatusNew || order.Token != "TKN" {
		t.Fatalf("status=%q token=%q", order.Status, order.Token)
	}
	if order.From.Tx != nil || order.To.Tx != nil {
		t.Fatalf("tx must be absent on both legs: from=%+v to=%+v", order.From.Tx, order.To.Tx)
	}
	if order.Phase() != PhaseNew {
		t.Fatalf("Phase()=%s", order.Phase())
	}
}

func TestClient_OrderDetailsSendsIDAndToken(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, orderFixture)
	c := newTestClient(t, srv.URL)

	order, err := c.OrderDetails(context.Background(), "TESTID", "TOKEN123")
	if err != nil {
		t.Fatalf("OrderDetails() error = %v", err)
	}
	if got.body != `{"id":"TESTID","token":"TOKEN123"}` || got.path != "/api/v2/order" {
		t.Fatalf("body=%q path=%q", got.body, got.path)
	}
	if order.ID != "TESTID" {
		t.Fatalf("id=%q", order.ID)
	}
}

func TestClient_ApplicationError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"code":429,"msg":"rate limited","data":null}`)
	c := newTestClient(t, srv.URL)

	q, err := c.Quote(context.Background(), QuoteRequest{Type: FixedOrder, FromCcy: "BTC", ToCcy: "ETH", Direction: DirectionFrom, Amount: "0.5"})
	if q != nil {
		t.Fatalf("Quote() returned a result alongside an application error")
	}
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %v, want *ApplicationError", err)
	}
	if appErr.Message != "rate limited" || appErr.Code != 429 {
		t.Fatalf("got code=%d msg=%q", appErr.Code, appErr.Message)
	}
}

func TestClient_EnvelopeOnErrorStatusIsApplicationError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusBadRequest, `{"code":301,"msg":"Invalid amount","data":null}`)
	c := newTestClient(t, srv.URL)

	_, err := c.OrderDetails(context.Background(), "X", "Y")
	var appErr *ApplicationError
	if !errors.As(err, &appErr) || appErr.Code != 301 {
		t.Fatalf("error = %v, want application error 301", err)
	}
}

func TestClient_NonEnvelopeErrorStatusIsTransportError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusBadGateway, `<html>502 Bad Gateway</html>`)
	c := newTestClient(t, srv.URL)

	_, err := c.ListCurrencies(context.Background())
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if terr.StatusCode != http.StatusBadGateway || !IsRetryable(err) {
		t.Fatalf("status=%d retryable=%v", terr.StatusCode, IsRetryable(err))
	}
}

func TestClient_DecodeErrorKeepsBody(t *testing.T) {
	body := `{"code":0,"msg":"OK","data":{"id":42}}`
	srv, _ := newTestServer(t, http.StatusOK, body)
	c := newTestClient(t, srv.URL)

	_, err := c.OrderDetails(context.Background(), "X", "Y")
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if string(derr.Body) != body {
		t.Fatalf("Body=%q", derr.Body)
	}
	if IsRetryable(err) {
		t.Fatalf("decode errors must not be retryable")
	}
}

func TestClient_ConnectionRefusedIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	_, err := c.ListCurrencies(context.Background())
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
}

func TestClient_ContextDeadlineIsTransportError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.OrderDetails(ctx, "X", "Y")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want wrapped context.DeadlineExceeded", err)
	}
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	if _, err := NewClient(Config{APISecret: "s"}); err == nil {
		t.Fatalf("expected error for empty api key")
	}
	_, err := NewClient(Config{APIKey: "k"})
	var serr *SigningError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *SigningError for empty secret", err)
	}
}

func TestClient_ConcurrentCalls(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, orderFixture)
	c := newTestClient(t, srv.URL)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.OrderDetails(context.Background(), "TESTID", "TOKEN123"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("OrderDetails() error = %v", err)
	}
}
