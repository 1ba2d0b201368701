package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/zincsforboats/zincfinder/internal/models"
	"github.com/zincsforboats/zincfinder/pkg/utils"
)

const homeMessage = "Welcome to the Boat Zincs API"

// genericErrorMessage is the only detail leaked for unexpected failures.
const genericErrorMessage = "An unexpected error occurred."

// sampleData is the fixed payload served by GET /data.
var sampleData = map[string]string{
	"product_1": "Johnson Evinrude Skeg Zinc 40 - 75 Hp 1999 - 2006",
	"product_2": "Coastal Copper 450 Multi-Season Ablative Antifouling Bottom Paint Black Gallon",
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(homeMessage))
}

func (s *Server) handleGetResponse(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	query := r.URL.Query().Get("query")
	if query == "" {
		s.logger.Info("query not provided", zap.String("request_id", reqID))
		s.respondError(w, http.StatusBadRequest, "Query is required")
		return
	}

	page, err := intParam(r, "page", 1)
	if err != nil {
		s.logger.Error("bad pagination parameter", zap.String("request_id", reqID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, genericErrorMessage)
		return
	}
	perPage, err := intParam(r, "per_page", s.reply.DefaultPerPage)
	if err != nil {
		s.logger.Error("bad pagination parameter", zap.String("request_id", reqID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, genericErrorMessage)
		return
	}
	params := models.PageParams{Page: page, PerPage: perPage}
	params.Normalize(s.reply.DefaultPerPage)

	s.logger.Info("handling query",
		zap.String("request_id", reqID),
		zap.String("query", utils.Truncate(query, 200)),
		zap.Int("page", params.Page),
		zap.Int("per_page", params.PerPage),
	)

	reply := s.engine.Respond(r.Context(), query, params.Page, params.PerPage)
	s.respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, sampleData)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// intParam parses an optional integer query parameter. A malformed value is
// an error for the request, not a silent default.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", name, raw, err)
	}
	return v, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
