package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/abhisek/aalp/internal/assertion"
	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/rules"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// levelParam reads ?level=N, defaulting to the learner's current level.
func (s *Server) levelParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("level")
	if raw == "" {
		return s.currentLevel(r)
	}
	level, err := strconv.Atoi(raw)
	if err != nil || level < 1 {
		return 0, fmt.Errorf("invalid level %q", raw)
	}
	return level, nil
}

func (s *Server) handleAssertions(w http.ResponseWriter, r *http.Request) {
	level, err := s.levelParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"level":   level,
		"domains": toDomainGroups(assertion.ForLevel(level)),
	})
}

func (s *Server) handleClassifications(w http.ResponseWriter, r *http.Request) {
	level, err := s.levelParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := []ruleDTO{}
	for _, rule := range rules.ForLevel(level) {
		out = append(out, toRuleDTO(rule))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"level":           level,
		"classifications": out,
	})
}

func (s *Server) handleNewProblem(w http.ResponseWriter, r *http.Request) {
	level, err := s.levelParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prior, err := s.events.RecentNarratives(r.Context(), 20)
	if err != nil {
		prior = nil
	}

	s.mu.Lock()
	p, err := s.gen.Generate(level, prior)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toProblemDTO(p))
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Expected == "" {
		writeError(w, http.StatusBadRequest, "expected classification key required")
		return
	}
	if _, err := rules.Get(rules.Key(req.Expected)); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	result, err := match.Classify(req.selection(), rules.Key(req.Expected))
	if err != nil {
		var unknownCode *match.UnknownCodeError
		var linkage *match.LinkageError
		var notFound *rules.NotFoundError
		switch {
		case errors.As(err, &unknownCode), errors.As(err, &linkage):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.As(err, &notFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, toClassifyResponse(result))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	level, err := s.currentLevel(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats, err := s.events.RuleStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	tallies := make(map[string]tallyDTO, len(stats))
	for key, tally := range stats {
		tallies[key] = tallyDTO{Attempts: tally.Attempts, Correct: tally.Correct}
	}
	writeJSON(w, http.StatusOK, progressDTO{
		Level:   level,
		MaxLvl:  rules.MaxLevel(),
		Tallies: tallies,
	})
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.sim.Balances(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"balances": balances})
}
