package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sagecrest/pulsedash/internal/domain/goal"
)

// goalResponse decorates a goal with its derived progress fields.
type goalResponse struct {
	goal.Goal
	Progress float64 `json:"progress"`
	Complete bool    `json:"complete"`
}

func toGoalResponse(g goal.Goal) goalResponse {
	return goalResponse{Goal: g, Progress: g.Progress(), Complete: g.Complete()}
}

// handleListGoals returns the goals for ?quarter=&year=, defaulting to
// the current quarter.
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	quarter := int(now.Month()-1)/3 + 1
	year := now.Year()

	if q := r.URL.Query().Get("quarter"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "quarter must be a number")
			return
		}
		quarter = n
	}
	if y := r.URL.Query().Get("year"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "year must be a number")
			return
		}
		year = n
	}

	goals, err := s.goals.List(r.Context(), quarter, year)
	if err != nil {
		writeDomainError(w, err, "goals not found")
		return
	}

	out := make([]goalResponse, len(goals))
	for i, g := range goals {
		out[i] = toGoalResponse(g)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[goal.CreateRequest](w, r)
	if !ok {
		return
	}
	g, err := s.goals.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "goal not found")
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(*g))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[goal.UpdateRequest](w, r)
	if !ok {
		return
	}
	g, err := s.goals.Update(r.Context(), urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "goal not found")
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(*g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.Delete(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "goal not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
