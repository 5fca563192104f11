package api

import (
	"encoding/json"
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/staking-ledger/internal/types"
)

type transitionRequest struct {
	Account string `json:"account"`
	Amount  string `json:"amount,omitempty"`
}

type adminRequest struct {
	Caller string `json:"caller"`
	Token  string `json:"token,omitempty"`
}

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	req, amount, ok := decodeTransition(w, r, true)
	if !ok {
		return
	}
	if serviceErr := s.service.Deposit(r.Context(), req.Account, amount); serviceErr != nil {
		writeError(w, r, serviceErr)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	req, amount, ok := decodeTransition(w, r, true)
	if !ok {
		return
	}
	if serviceErr := s.service.Withdraw(r.Context(), req.Account, amount); serviceErr != nil {
		writeError(w, r, serviceErr)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	req, _, ok := decodeTransition(w, r, false)
	if !ok {
		return
	}
	if serviceErr := s.service.ClaimReward(r.Context(), req.Account); serviceErr != nil {
		writeError(w, r, serviceErr)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleEmergencyWithdraw(w http.ResponseWriter, r *http.Request) {
	req, _, ok := decodeTransition(w, r, false)
	if !ok {
		return
	}
	if serviceErr := s.service.EmergencyWithdraw(r.Context(), req.Account); serviceErr != nil {
		writeError(w, r, serviceErr)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handlePoolStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.PoolStatus())
}

func (s *Server) handleStakeInfo(w http.ResponseWriter, r *http.Request) {
	info, serviceErr := s.service.StakeInfo(chi.URLParam(r, "account"))
	if serviceErr != nil {
		writeError(w, r, serviceErr)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleAccountHistory(w http.ResponseWriter, r *http.Request) {
	records, serviceErr := s.service.AccountHistory(r.Context(), chi.URLParam(r, "account"))
	if serviceErr != nil {
		writeError(w, r, serviceErr)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAdmin(w, r)
	if !ok {
		return
	}
	if serviceErr := s.service.Pause(r.Context(), req.Caller); serviceErr != nil {
		writeError(w, r, serviceErr)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "paused"})
}

func (s *Server) handleUnpause(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAdmin(w, r)
	if !ok {
		return
	}
	if serviceErr := s.service.Unpause(r.Context(), req.Caller); serviceErr != nil {
		writeError(w, r, serviceErr)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "active"})
}

func (s *Server) handleRecoverToken(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAdmin(w, r)
	if !ok {
		return
	}
	if serviceErr := s.service.RecoverToken(r.Context(), req.Caller, req.Token); serviceErr != nil {
		writeError(w, r, serviceErr)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "recovered"})
}

func decodeTransition(w http.ResponseWriter, r *http.Request, needsAmount bool) (transitionRequest, sdkmath.Int, bool) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, types.NewErrorWithMsg(
			http.StatusBadRequest, types.BadRequest, "invalid request body",
		))
		return req, sdkmath.Int{}, false
	}

	if !needsAmount {
		return req, sdkmath.Int{}, true
	}

	amount, ok := sdkmath.NewIntFromString(req.Amount)
	if !ok {
		writeError(w, r, types.NewErrorWithMsg(
			http.StatusBadRequest, types.BadRequest, "amount must be a decimal integer string",
		))
		return req, sdkmath.Int{}, false
	}
	return req, amount, true
}

func decodeAdmin(w http.ResponseWriter, r *http.Request) (adminRequest, bool) {
	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, types.NewErrorWithMsg(
			http.StatusBadRequest, types.BadRequest, "invalid request body",
		))
		return req, false
	}
	return req, true
}

func writeError(w http.ResponseWriter, r *http.Request, serviceErr *types.Error) {
	writeJSON(w, serviceErr.StatusCode, errorResponse{
		ErrorCode: serviceErr.ErrorCode.String(),
		Message:   serviceErr.Err.Error(),
	})

	if serviceErr.StatusCode >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(serviceErr).Msg("request failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}
