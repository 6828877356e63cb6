package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/spigell/stemwijzer/internal/favorites"
	"github.com/spigell/stemwijzer/internal/logger"
	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{Error: code, Message: message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var wire map[string]sw.WireAnswer
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&wire); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if len(wire) == 0 {
		s.respondError(w, http.StatusBadRequest, "Answers cannot be empty", "")
		return
	}

	answers, err := sw.DecodeAnswers(wire)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid answers", err.Error())
		return
	}

	calc, err := s.calculator.CalculateLocally(answers)
	if err != nil {
		s.logger.Error("failed to calculate matches", zap.Int(logger.FieldAnswers, len(answers)), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "Failed to calculate matches", err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, calc.Result)
}

type questionsResponse struct {
	Questions        []sw.Question       `json:"questions"`
	Categories       []sw.Category       `json:"categories"`
	AnswerOptions    []optionResponse    `json:"answerOptions"`
	ImportanceLevels []importanceResponse `json:"importanceLevels"`
}

type optionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

type importanceResponse struct {
	Value  string  `json:"value"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	resp := questionsResponse{
		Questions:  s.calculator.Tables().Catalog.Questions(),
		Categories: sw.Categories,
	}
	for _, a := range sw.AnswerOptions {
		resp.AnswerOptions = append(resp.AnswerOptions, optionResponse{Value: a.String(), Label: a.Label(), Score: a.Score()})
	}
	for _, l := range sw.ImportanceLevels {
		resp.ImportanceLevels = append(resp.ImportanceLevels, importanceResponse{Value: l.String(), Label: l.Label(), Weight: l.Weight()})
	}

	s.respondJSON(w, http.StatusOK, resp)
}

type partyResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleParties(w http.ResponseWriter, r *http.Request) {
	parties := s.calculator.Tables().Positions.Parties()
	resp := make([]partyResponse, 0, len(parties))
	for _, p := range parties {
		resp = append(resp, partyResponse{ID: p.ID, Name: p.Name, Color: p.Color})
	}

	s.respondJSON(w, http.StatusOK, resp)
}

type favoriteRequest struct {
	PartyID string `json:"partyId"`
}

type favoriteResponse struct {
	Message       string `json:"message"`
	FavoriteParty string `json:"favoriteParty"`
}

func (s *Server) handleSetFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	partyID := strings.TrimSpace(req.PartyID)
	if partyID == "" {
		s.respondError(w, http.StatusBadRequest, "Party ID is required", "")
		return
	}

	if _, err := s.calculator.Tables().Positions.Party(partyID); err != nil {
		s.respondError(w, http.StatusBadRequest, "Unknown party", err.Error())
		return
	}

	if s.favorites == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Favorites are disabled", "")
		return
	}

	fav, err := s.favorites.Set(r.Context(), userID, partyID)
	s.metrics.FavoriteUpdate(err == nil)
	if err != nil {
		s.logger.Error("failed to update favorite party", zap.Int64("user_id", userID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "Failed to update favorite party", "")
		return
	}

	s.respondJSON(w, http.StatusOK, favoriteResponse{
		Message:       "Favorite party updated",
		FavoriteParty: fav.PartyID,
	})
}

func (s *Server) handleGetFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	if s.favorites == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Favorites are disabled", "")
		return
	}

	fav, err := s.favorites.Get(r.Context(), userID)
	if errors.Is(err, favorites.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "Favorite party not found", "")
		return
	}
	if err != nil {
		s.logger.Error("failed to load favorite party", zap.Int64("user_id", userID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "Failed to load favorite party", "")
		return
	}

	s.respondJSON(w, http.StatusOK, fav)
}

func (s *Server) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		s.respondError(w, http.StatusBadRequest, "Invalid user ID", "user id must be a positive integer")
		return 0, false
	}
	return id, true
}
