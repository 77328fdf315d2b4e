package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	apperrors "optionsim/internal/errors"
	"optionsim/internal/logging"
	"optionsim/internal/models"
	"optionsim/internal/payoff"
)

// errorResponse is the JSON error shape for all endpoints.
type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

// simulationOptions are the optional tuning fields shared by payoff
// requests. Zero values fall back to config; pointer fields distinguish
// "omitted" from a literal zero.
type simulationOptions struct {
	Lots         int      `json:"lots"`
	Symbol       string   `json:"symbol"`
	GridPoints   int      `json:"gridPoints"`
	GridMin      *float64 `json:"gridMin"`
	GridMax      *float64 `json:"gridMax"`
	Tolerance    *float64 `json:"tolerance"`
	IncludeCurve bool     `json:"includeCurve"`
}

type bullCallSpreadParams struct {
	BuyCallStrike   float64 `json:"buyCallStrike"`
	BuyCallPremium  float64 `json:"buyCallPremium"`
	SellCallStrike  float64 `json:"sellCallStrike"`
	SellCallPremium float64 `json:"sellCallPremium"`
}

type bullCallSpreadRequest struct {
	bullCallSpreadParams
	simulationOptions
}

type ironCondorParams struct {
	BuyPutStrike    float64 `json:"buyPutStrike"`
	BuyPutPremium   float64 `json:"buyPutPremium"`
	SellPutStrike   float64 `json:"sellPutStrike"`
	SellPutPremium  float64 `json:"sellPutPremium"`
	SellCallStrike  float64 `json:"sellCallStrike"`
	SellCallPremium float64 `json:"sellCallPremium"`
	BuyCallStrike   float64 `json:"buyCallStrike"`
	BuyCallPremium  float64 `json:"buyCallPremium"`
}

type ironCondorRequest struct {
	ironCondorParams
	simulationOptions
}

type legResponse struct {
	Strike  float64 `json:"strike"`
	Type    string  `json:"type"`
	Side    string  `json:"side"`
	Premium float64 `json:"premium"`
}

type summaryResponse struct {
	MaxProfit  float64   `json:"maxProfit"`
	MaxLoss    float64   `json:"maxLoss"`
	NetPremium float64   `json:"netPremium"`
	Breakevens []float64 `json:"breakevens"`
	LotSize    int       `json:"lotSize"`
}

type curvePoint struct {
	Spot   float64 `json:"spot"`
	Payoff float64 `json:"payoff"`
}

type payoffResponse struct {
	Strategy   string          `json:"strategy"`
	Symbol     string          `json:"symbol,omitempty"`
	Parameters interface{}     `json:"parameters"`
	Legs       []legResponse   `json:"legs"`
	Summary    summaryResponse `json:"summary"`
	Curve      []curvePoint    `json:"curve,omitempty"`
}

type contractResponse struct {
	Symbol     string    `json:"symbol"`
	Name       string    `json:"name"`
	Exchange   string    `json:"exchange"`
	LotSize    int       `json:"lotSize"`
	TickSize   float64   `json:"tickSize"`
	StrikeStep float64   `json:"strikeStep"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type strategyDescriptor struct {
	Strategy string `json:"strategy"`
	Name     string `json:"name"`
	Legs     int    `json:"legs"`
	Outlook  string `json:"outlook"`
	Endpoint string `json:"endpoint"`
}

var strategyDescriptors = []strategyDescriptor{
	{string(models.StrategyBullCallSpread), "Bull Call Spread", 2, "Bullish", "/api/v1/payoff/bull-call-spread"},
	{string(models.StrategyIronCondor), "Iron Condor", 4, "Neutral", "/api/v1/payoff/iron-condor"},
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, errType string, err error) {
	s.writeJSON(w, status, errorResponse{Type: errType, Msg: err.Error()})
}

// writeSimulationError maps payoff errors onto HTTP statuses. Rejected
// input is the caller's fault; everything else is ours.
func (s *Server) writeSimulationError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidPremium),
		apperrors.Is(err, apperrors.ErrUnorderedStrikes),
		apperrors.Is(err, apperrors.ErrInvalidLotSize),
		apperrors.Is(err, apperrors.ErrInvalidGrid):
		s.writeError(w, http.StatusBadRequest, "validation", err)
	case apperrors.Is(err, apperrors.ErrSymbolNotFound):
		s.writeError(w, http.StatusNotFound, "symbol", err)
	case apperrors.Is(err, apperrors.ErrDatabaseError):
		s.writeError(w, http.StatusServiceUnavailable, "store", err)
	default:
		s.writeError(w, http.StatusInternalServerError, "internal", err)
	}
}

func (s *Server) handleBullCallSpread(w http.ResponseWriter, r *http.Request) {
	var req bullCallSpreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "decode", fmt.Errorf("failed to decode request: %w", err))
		return
	}

	lotSize, symbol, err := s.resolveLotSize(r.Context(), &req.simulationOptions)
	if err != nil {
		s.writeSimulationError(w, err)
		return
	}

	strategy := models.BullCallSpread{
		BuyCallStrike:   req.BuyCallStrike,
		BuyCallPremium:  req.BuyCallPremium,
		SellCallStrike:  req.SellCallStrike,
		SellCallPremium: req.SellCallPremium,
		LotSize:         lotSize,
	}

	resp, err := s.simulate(r.Context(), strategy, &req.simulationOptions, symbol)
	if err != nil {
		s.writeSimulationError(w, err)
		return
	}

	resp.Parameters = req.bullCallSpreadParams
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIronCondor(w http.ResponseWriter, r *http.Request) {
	var req ironCondorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "decode", fmt.Errorf("failed to decode request: %w", err))
		return
	}

	lotSize, symbol, err := s.resolveLotSize(r.Context(), &req.simulationOptions)
	if err != nil {
		s.writeSimulationError(w, err)
		return
	}

	strategy := models.IronCondor{
		BuyPutStrike:    req.BuyPutStrike,
		BuyPutPremium:   req.BuyPutPremium,
		SellPutStrike:   req.SellPutStrike,
		SellPutPremium:  req.SellPutPremium,
		SellCallStrike:  req.SellCallStrike,
		SellCallPremium: req.SellCallPremium,
		BuyCallStrike:   req.BuyCallStrike,
		BuyCallPremium:  req.BuyCallPremium,
		LotSize:         lotSize,
	}

	resp, err := s.simulate(r.Context(), strategy, &req.simulationOptions, symbol)
	if err != nil {
		s.writeSimulationError(w, err)
		return
	}

	resp.Parameters = req.ironCondorParams
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"strategies": strategyDescriptors})
}

func (s *Server) handleListContracts(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "store", fmt.Errorf("contract store unavailable"))
		return
	}

	specs, err := s.store.ListContractSpecs(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "store", err)
		return
	}

	contracts := make([]contractResponse, len(specs))
	for i, spec := range specs {
		contracts[i] = newContractResponse(&spec)
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"contracts": contracts})
}

func (s *Server) handleGetContract(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "store", fmt.Errorf("contract store unavailable"))
		return
	}

	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	spec, err := s.store.GetContractSpec(r.Context(), symbol)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "store", err)
		return
	}
	if spec == nil {
		s.writeError(w, http.StatusNotFound, "symbol", apperrors.Wrapf(apperrors.ErrSymbolNotFound, "%s", symbol))
		return
	}

	s.writeJSON(w, http.StatusOK, newContractResponse(spec))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resolveLotSize mirrors the CLI's --lots/--symbol semantics: the
// effective multiplier is lots times the symbol's contract lot size,
// or lots times the configured default when no symbol is given.
func (s *Server) resolveLotSize(ctx context.Context, opts *simulationOptions) (int, string, error) {
	lots := opts.Lots
	if lots == 0 {
		lots = 1
	}

	symbol := strings.ToUpper(strings.TrimSpace(opts.Symbol))
	multiplier := s.cfg.Defaults.LotSize
	if symbol != "" {
		if s.store == nil {
			return 0, "", apperrors.Wrapf(apperrors.ErrDatabaseError, "contract store unavailable")
		}
		spec, err := s.store.GetContractSpec(ctx, symbol)
		if err != nil {
			return 0, "", err
		}
		if spec == nil {
			return 0, "", apperrors.Wrapf(apperrors.ErrSymbolNotFound, "%s", symbol)
		}
		multiplier = spec.LotSize
	}

	return lots * multiplier, symbol, nil
}

// resolveGrid applies config defaults to any omitted grid options.
func (s *Server) resolveGrid(opts *simulationOptions) ([]float64, float64, error) {
	points := opts.GridPoints
	if points == 0 {
		points = s.cfg.Grid.Points
	}
	lo := s.cfg.Grid.Min
	if opts.GridMin != nil {
		lo = *opts.GridMin
	}
	hi := s.cfg.Grid.Max
	if opts.GridMax != nil {
		hi = *opts.GridMax
	}
	tolerance := s.cfg.Defaults.Tolerance
	if opts.Tolerance != nil {
		tolerance = *opts.Tolerance
	}

	spots := payoff.Grid(points, lo, hi)
	if spots == nil {
		return nil, 0, apperrors.Wrapf(apperrors.ErrInvalidGrid, "points=%d min=%v max=%v", points, lo, hi)
	}

	return spots, tolerance, nil
}

func (s *Server) simulate(ctx context.Context, strategy models.Strategy, opts *simulationOptions, symbol string) (*payoffResponse, error) {
	spots, tolerance, err := s.resolveGrid(opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, curve, err := payoff.Evaluate(strategy, spots, tolerance)
	if err != nil {
		logging.LogValidationFailure(logging.FromContext(ctx), string(strategy.Kind()), err)
		return nil, err
	}

	logging.LogComputation(logging.FromContext(ctx), string(result.Kind), result.LotSize, len(spots),
		len(result.Breakevens), result.MaxProfit, result.MaxLoss, time.Since(start))

	legs := make([]legResponse, len(result.Legs))
	for i, leg := range result.Legs {
		legs[i] = legResponse{
			Strike:  leg.Strike,
			Type:    leg.Type,
			Side:    string(leg.Side),
			Premium: leg.Premium,
		}
	}

	breakevens := result.Breakevens
	if breakevens == nil {
		breakevens = []float64{}
	}

	resp := &payoffResponse{
		Strategy: string(result.Kind),
		Symbol:   symbol,
		Legs:     legs,
		Summary: summaryResponse{
			MaxProfit:  result.MaxProfit,
			MaxLoss:    result.MaxLoss,
			NetPremium: result.NetPremium,
			Breakevens: breakevens,
			LotSize:    result.LotSize,
		},
	}

	if opts.IncludeCurve {
		resp.Curve = make([]curvePoint, len(spots))
		for i := range spots {
			resp.Curve[i] = curvePoint{Spot: spots[i], Payoff: curve[i]}
		}
	}

	return resp, nil
}

func newContractResponse(spec *models.ContractSpec) contractResponse {
	return contractResponse{
		Symbol:     spec.Symbol,
		Name:       spec.Name,
		Exchange:   string(spec.Exchange),
		LotSize:    spec.LotSize,
		TickSize:   spec.TickSize,
		StrikeStep: spec.StrikeStep,
		UpdatedAt:  spec.UpdatedAt,
	}
}
