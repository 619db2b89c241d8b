package http

import "net/http"

type verifyRequest struct {
	Password string `json:"password"`
}

// handleVerify checks the shared dashboard password. A missing password
// is 401, a wrong one is 403; the failure body carries nothing beyond
// valid=false, so enumeration gets nothing to work with beyond the rate
// limit.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[verifyRequest](w, r)
	if !ok {
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := s.auth.Verify(r.Context(), req.Password)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if !result.Valid {
		writeJSON(w, http.StatusForbidden, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
