package web

import (
	"net/http"

	"github.com/VipinKumar1310/autotrade/internal/domain"
)

// automationView decorates an automation with the resolved names of its
// broker and channel. A dangling reference renders as an empty name, the
// UI shows it as "Unknown".
type automationView struct {
	domain.Automation
	BrokerName   string `json:"broker_name"`
	ProviderName string `json:"provider_name,omitempty"`
}

func (s *Server) automationView(a domain.Automation) automationView {
	v := automationView{Automation: a}
	if b, ok := s.store.BrokerByID(a.BrokerID); ok {
		v.BrokerName = b.Name
	}
	if a.TelegramProviderID != "" {
		if p, ok := s.store.ProviderByID(a.TelegramProviderID); ok {
			v.ProviderName = p.Name
		}
	}
	return v
}

func (s *Server) handleListAutomations(w http.ResponseWriter, r *http.Request) {
	automations := s.store.Automations()
	views := make([]automationView, 0, len(automations))
	for _, a := range automations {
		views = append(views, s.automationView(a))
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetAutomation(w http.ResponseWriter, r *http.Request) {
	a, ok := s.store.AutomationByID(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "automation not found")
		return
	}
	s.writeJSON(w, http.StatusOK, s.automationView(a))
}

func (s *Server) handleCreateAutomation(w http.ResponseWriter, r *http.Request) {
	var draft domain.AutomationDraft
	if !s.decodeJSON(w, r, &draft) {
		return
	}
	if draft.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if draft.Status == "" {
		draft.Status = domain.StatusRunning
	}

	auto, err := s.connector.SubmitAutomation(r.Context(), draft)
	if err != nil {
		s.writeMutationError(w, err, "")
		return
	}
	s.writeJSON(w, http.StatusCreated, s.automationView(auto))
}

func (s *Server) handleUpdateAutomation(w http.ResponseWriter, r *http.Request) {
	var upd domain.AutomationUpdate
	if !s.decodeJSON(w, r, &upd) {
		return
	}

	id := r.PathValue("id")
	if err := s.store.UpdateAutomation(r.Context(), id, upd); err != nil {
		s.writeMutationError(w, err, "automation not found")
		return
	}
	a, _ := s.store.AutomationByID(id)
	s.writeJSON(w, http.StatusOK, s.automationView(a))
}

func (s *Server) handleDeleteAutomation(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAutomation(r.Context(), r.PathValue("id")); err != nil {
		s.writeMutationError(w, err, "automation not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAutomationStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.AutomationStatus `json:"status"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	switch req.Status {
	case domain.StatusRunning, domain.StatusPaused, domain.StatusError:
	default:
		s.writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	id := r.PathValue("id")
	if err := s.store.UpdateAutomationStatus(r.Context(), id, req.Status); err != nil {
		s.writeMutationError(w, err, "automation not found")
		return
	}
	a, _ := s.store.AutomationByID(id)
	s.writeJSON(w, http.StatusOK, s.automationView(a))
}
