package http

import (
	"net/http"

	"github.com/sagecrest/pulsedash/internal/domain/entity"
)

func (s *Server) handleManageEntity(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[entity.ManageRequest](w, r)
	if !ok {
		return
	}
	result, err := s.entities.Manage(r.Context(), urlParam(r, "table"), req)
	if err != nil {
		writeDomainError(w, err, "record not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleListTables returns the registered table names so the dashboard
// can build its management UI without hardcoding them.
func (s *Server) handleListTables(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tables": entity.Tables()})
}
