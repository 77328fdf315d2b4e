package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"optionsim/internal/config"
	"optionsim/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "contracts.db"))
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return New(config.Default(), zerolog.Nop(), st)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestBullCallSpreadEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := `{"buyCallStrike":100,"buyCallPremium":5,"sellCallStrike":110,"sellCallPremium":2,"includeCurve":true}`
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/payoff/bull-call-spread", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp payoffResponse
	decodeResponse(t, rec, &resp)

	if resp.Strategy != "BULL_CALL_SPREAD" {
		t.Errorf("Expected strategy BULL_CALL_SPREAD, got %s", resp.Strategy)
	}
	if len(resp.Legs) != 2 {
		t.Errorf("Expected 2 legs, got %d", len(resp.Legs))
	}
	if resp.Summary.MaxProfit != 7 {
		t.Errorf("Expected max profit 7, got %v", resp.Summary.MaxProfit)
	}
	if resp.Summary.MaxLoss != -3 {
		t.Errorf("Expected max loss -3, got %v", resp.Summary.MaxLoss)
	}
	if resp.Summary.NetPremium != -3 {
		t.Errorf("Expected net premium -3, got %v", resp.Summary.NetPremium)
	}
	if len(resp.Summary.Breakevens) != 1 || resp.Summary.Breakevens[0] != 103 {
		t.Errorf("Expected breakevens [103], got %v", resp.Summary.Breakevens)
	}

	if len(resp.Curve) != 1000 {
		t.Fatalf("Expected 1000 curve points, got %d", len(resp.Curve))
	}
	if resp.Curve[0].Spot != 0 || resp.Curve[0].Payoff != -3 {
		t.Errorf("Expected curve to start at (0, -3), got (%v, %v)", resp.Curve[0].Spot, resp.Curve[0].Payoff)
	}
	last := resp.Curve[len(resp.Curve)-1]
	if last.Spot != 5000 || last.Payoff != 7 {
		t.Errorf("Expected curve to end at (5000, 7), got (%v, %v)", last.Spot, last.Payoff)
	}
}

func TestBullCallSpreadEndpointOmitsCurveByDefault(t *testing.T) {
	srv := newTestServer(t)

	body := `{"buyCallStrike":100,"buyCallPremium":5,"sellCallStrike":110,"sellCallPremium":2}`
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/payoff/bull-call-spread", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"curve"`) {
		t.Error("Expected curve to be omitted when includeCurve is false")
	}
}

func TestIronCondorEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := `{"buyPutStrike":90,"buyPutPremium":2,"sellPutStrike":100,"sellPutPremium":5,
		"sellCallStrike":110,"sellCallPremium":5,"buyCallStrike":120,"buyCallPremium":2}`
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/payoff/iron-condor", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp payoffResponse
	decodeResponse(t, rec, &resp)

	if resp.Strategy != "IRON_CONDOR" {
		t.Errorf("Expected strategy IRON_CONDOR, got %s", resp.Strategy)
	}
	if len(resp.Legs) != 4 {
		t.Errorf("Expected 4 legs, got %d", len(resp.Legs))
	}
	if resp.Summary.MaxProfit != 6 {
		t.Errorf("Expected max profit 6, got %v", resp.Summary.MaxProfit)
	}
	if resp.Summary.MaxLoss != -4 {
		t.Errorf("Expected max loss -4, got %v", resp.Summary.MaxLoss)
	}
	if resp.Summary.NetPremium != 6 {
		t.Errorf("Expected net premium 6, got %v", resp.Summary.NetPremium)
	}
	if len(resp.Summary.Breakevens) != 2 {
		t.Fatalf("Expected 2 breakevens, got %v", resp.Summary.Breakevens)
	}
	if resp.Summary.Breakevens[0] != 94 || resp.Summary.Breakevens[1] != 116 {
		t.Errorf("Expected breakevens [94 116], got %v", resp.Summary.Breakevens)
	}
}

func TestPayoffEndpointValidation(t *testing.T) {
	srv := newTestServer(t)

	testCases := []struct {
		name     string
		path     string
		body     string
		wantCode int
		wantType string
	}{
		{
			name:     "zero premium rejected",
			path:     "/api/v1/payoff/bull-call-spread",
			body:     `{"buyCallStrike":100,"buyCallPremium":0,"sellCallStrike":110,"sellCallPremium":2}`,
			wantCode: http.StatusBadRequest,
			wantType: "validation",
		},
		{
			name:     "negative premium rejected",
			path:     "/api/v1/payoff/iron-condor",
			body:     `{"buyPutStrike":90,"buyPutPremium":-2,"sellPutStrike":100,"sellPutPremium":5,"sellCallStrike":110,"sellCallPremium":5,"buyCallStrike":120,"buyCallPremium":2}`,
			wantCode: http.StatusBadRequest,
			wantType: "validation",
		},
		{
			name:     "decreasing strikes rejected",
			path:     "/api/v1/payoff/bull-call-spread",
			body:     `{"buyCallStrike":110,"buyCallPremium":5,"sellCallStrike":100,"sellCallPremium":2}`,
			wantCode: http.StatusBadRequest,
			wantType: "validation",
		},
		{
			name:     "negative lots rejected",
			path:     "/api/v1/payoff/bull-call-spread",
			body:     `{"buyCallStrike":100,"buyCallPremium":5,"sellCallStrike":110,"sellCallPremium":2,"lots":-1}`,
			wantCode: http.StatusBadRequest,
			wantType: "validation",
		},
		{
			name:     "single point grid rejected",
			path:     "/api/v1/payoff/bull-call-spread",
			body:     `{"buyCallStrike":100,"buyCallPremium":5,"sellCallStrike":110,"sellCallPremium":2,"gridPoints":1}`,
			wantCode: http.StatusBadRequest,
			wantType: "validation",
		},
		{
			name:     "inverted grid rejected",
			path:     "/api/v1/payoff/bull-call-spread",
			body:     `{"buyCallStrike":100,"buyCallPremium":5,"sellCallStrike":110,"sellCallPremium":2,"gridMin":5000,"gridMax":0}`,
			wantCode: http.StatusBadRequest,
			wantType: "validation",
		},
		{
			name:     "malformed body rejected",
			path:     "/api/v1/payoff/bull-call-spread",
			body:     `{"buyCallStrike":`,
			wantCode: http.StatusBadRequest,
			wantType: "decode",
		},
		{
			name:     "unknown symbol",
			path:     "/api/v1/payoff/bull-call-spread",
			body:     `{"buyCallStrike":100,"buyCallPremium":5,"sellCallStrike":110,"sellCallPremium":2,"symbol":"NOSUCH"}`,
			wantCode: http.StatusNotFound,
			wantType: "symbol",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, tc.path, tc.body)

			if rec.Code != tc.wantCode {
				t.Fatalf("Expected %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}

			var errResp errorResponse
			decodeResponse(t, rec, &errResp)
			if errResp.Type != tc.wantType {
				t.Errorf("Expected error type %q, got %q (%s)", tc.wantType, errResp.Type, errResp.Msg)
			}
		})
	}
}

func TestSymbolResolvesLotSize(t *testing.T) {
	srv := newTestServer(t)

	body := `{"buyCallStrike":100,"buyCallPremium":5,"sellCallStrike":110,"sellCallPremium":2,"symbol":"nifty"}`
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/payoff/bull-call-spread", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp payoffResponse
	decodeResponse(t, rec, &resp)

	if resp.Symbol != "NIFTY" {
		t.Errorf("Expected symbol NIFTY, got %q", resp.Symbol)
	}
	if resp.Summary.LotSize != 75 {
		t.Errorf("Expected lot size 75, got %d", resp.Summary.LotSize)
	}
	if resp.Summary.MaxProfit != 7*75 {
		t.Errorf("Expected max profit %v, got %v", 7.0*75, resp.Summary.MaxProfit)
	}
	if resp.Summary.MaxLoss != -3*75 {
		t.Errorf("Expected max loss %v, got %v", -3.0*75, resp.Summary.MaxLoss)
	}
}

func TestStrategiesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/strategies", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Strategies []strategyDescriptor `json:"strategies"`
	}
	decodeResponse(t, rec, &resp)

	if len(resp.Strategies) != 2 {
		t.Fatalf("Expected 2 strategies, got %d", len(resp.Strategies))
	}
	if resp.Strategies[0].Strategy != "BULL_CALL_SPREAD" || resp.Strategies[1].Strategy != "IRON_CONDOR" {
		t.Errorf("Unexpected strategy descriptors: %+v", resp.Strategies)
	}
}

func TestContractsEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/contracts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var listResp struct {
		Contracts []contractResponse `json:"contracts"`
	}
	decodeResponse(t, rec, &listResp)
	if len(listResp.Contracts) == 0 {
		t.Fatal("Expected seeded contracts, got none")
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/contracts/banknifty", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var spec contractResponse
	decodeResponse(t, rec, &spec)
	if spec.Symbol != "BANKNIFTY" || spec.LotSize != 35 {
		t.Errorf("Unexpected contract: %+v", spec)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/contracts/NOSUCH", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown symbol, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	decodeResponse(t, rec, &resp)
	if resp["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", resp["status"])
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/healthz", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a generated X-Request-ID header")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "test-request-id")
	echo := httptest.NewRecorder()
	srv.Router().ServeHTTP(echo, req)

	if got := echo.Header().Get("X-Request-ID"); got != "test-request-id" {
		t.Errorf("Expected X-Request-ID to be echoed, got %q", got)
	}
}

func TestServerWithoutStore(t *testing.T) {
	srv := New(config.Default(), zerolog.Nop(), nil)

	// Payoff computation works without a store when no symbol is given.
	body := `{"buyCallStrike":100,"buyCallPremium":5,"sellCallStrike":110,"sellCallPremium":2}`
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/payoff/bull-call-spread", body)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 without store, got %d", rec.Code)
	}

	// Symbol lookups degrade to 503.
	body = `{"buyCallStrike":100,"buyCallPremium":5,"sellCallStrike":110,"sellCallPremium":2,"symbol":"NIFTY"}`
	rec = doRequest(t, srv, http.MethodPost, "/api/v1/payoff/bull-call-spread", body)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 for symbol lookup without store, got %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/contracts", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 for contracts without store, got %d", rec.Code)
	}
}
