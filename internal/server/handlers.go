package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Radz112/bonding-curve-exit-badge/internal/service"
)

// classifyRequest is the POST body for the classification operation.
type classifyRequest struct {
	Wallet string `json:"wallet"`
	Token  string `json:"token"`
}

// classifyData is the success payload.
type classifyData struct {
	Wallet        string `json:"wallet"`
	TokenSymbol   string `json:"token_symbol"`
	ExitType      string `json:"exit_type"`
	ExitVenue     string `json:"exit_venue"`
	Confidence    string `json:"confidence"`
	Description   string `json:"description"`
	ImageBase64   string `json:"image_base64"`
	PayToAddress  string `json:"pay_to_address"`
	SellSignature string `json:"sell_signature"`
	SellTimestamp string `json:"sell_timestamp"` // RFC3339
}

// apiResponse is the uniform response envelope.
type apiResponse struct {
	Status string        `json:"status"` // "success" | "error"
	Cached *bool         `json:"cached,omitempty"`
	Data   *classifyData `json:"data,omitempty"`
	Error  string        `json:"error,omitempty"`
	Kind   string        `json:"kind,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": "v2"})
}

// handleDescribe returns the self-describing endpoint document.
func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	venues := s.svc.Venues()
	supported := make([]map[string]string, 0, len(venues))
	for _, v := range venues {
		supported = append(supported, map[string]string{
			"exit_type":  v.ExitType,
			"exit_venue": v.ExitVenue,
		})
	}

	stats, err := s.svc.CacheStats(r.Context())
	if err != nil {
		s.log.Warn().Err(err).Msg("cache stats unavailable")
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"endpoint":       "/api/v1/solana/curve-exit",
		"version":        "v2",
		"method":         "POST",
		"description":    "Verify where a wallet sold a Pump.fun token with weighted attribution scoring. Returns badge with token symbol and confidence level.",
		"pricing":        "$0.01 per call",
		"pay_to_address": s.payToAddress,
		"request_body": map[string]string{
			"wallet": "string - Solana wallet address",
			"token":  "string - Token mint address",
		},
		"supported_venues": supported,
		"cache_stats":      stats,
	})
}

// handleClassify runs the paid classification operation.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	if err := validateAddress(req.Wallet, true); err != nil {
		s.writeError(w, http.StatusBadRequest, "missing or invalid \"wallet\": must be a base58-encoded Solana address: "+err.Error(), "")
		return
	}
	if err := validateAddress(req.Token, false); err != nil {
		s.writeError(w, http.StatusBadRequest, "missing or invalid \"token\": must be a base58-encoded token mint address: "+err.Error(), "")
		return
	}

	entry, cached, err := s.svc.Classify(r.Context(), req.Wallet, req.Token)
	if err != nil {
		status, kind := errorStatus(err)
		s.log.Error().Err(err).Str("wallet", req.Wallet).Str("token", req.Token).Str("kind", kind).Msg("classification failed")
		s.writeError(w, status, err.Error(), kind)
		return
	}

	res := entry.Result
	s.writeJSON(w, http.StatusOK, apiResponse{
		Status: "success",
		Cached: &cached,
		Data: &classifyData{
			Wallet:        res.Wallet,
			TokenSymbol:   res.TokenSymbol,
			ExitType:      res.ExitType,
			ExitVenue:     res.ExitVenue,
			Confidence:    string(res.Confidence),
			Description:   res.Description,
			ImageBase64:   entry.BadgeBase64,
			PayToAddress:  s.payToAddress,
			SellSignature: res.SellSignature,
			SellTimestamp: time.Unix(res.SellTimestamp, 0).UTC().Format(time.RFC3339),
		},
	})
}

// handleStats reports cache stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.CacheStats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "cache stats unavailable", "")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// errorStatus maps a service error onto an HTTP status and kind tag.
func errorStatus(err error) (int, string) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		return http.StatusInternalServerError, ""
	}

	switch svcErr.Kind {
	case service.KindNotFound:
		return http.StatusNotFound, string(svcErr.Kind)
	case service.KindTimeout:
		return http.StatusGatewayTimeout, string(svcErr.Kind)
	case service.KindUpstream:
		return http.StatusBadGateway, string(svcErr.Kind)
	default:
		return http.StatusInternalServerError, string(svcErr.Kind)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("write response failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, kind string) {
	s.writeJSON(w, status, apiResponse{Status: "error", Error: msg, Kind: kind})
}

// Compile-time interface check for the concrete service.
var _ Classifier = (*service.Service)(nil)
