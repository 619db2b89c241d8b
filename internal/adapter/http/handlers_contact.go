package http

import (
	"net/http"

	"github.com/sagecrest/pulsedash/internal/domain/contact"
)

func (s *Server) handleSubmitContact(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[contact.CreateRequest](w, r)
	if !ok {
		return
	}
	sub, err := s.contact.Submit(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "submission not found")
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleListContact(w http.ResponseWriter, r *http.Request) {
	status := contact.Status(r.URL.Query().Get("status"))
	subs, err := s.contact.List(r.Context(), status)
	if err != nil {
		writeDomainError(w, err, "submissions not found")
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[contact.UpdateRequest](w, r)
	if !ok {
		return
	}
	sub, err := s.contact.Update(r.Context(), urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "submission not found")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
