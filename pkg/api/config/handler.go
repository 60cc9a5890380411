// Package config exposes runtime provider configuration over HTTP so the
// active LLM backend can be inspected and switched without a restart.
package config

import (
	"encoding/json"
	"net/http"

	"contract_intel/pkg/core/agent"

	"github.com/gorilla/mux"
)

type providerResponse struct {
	ActiveProvider string   `json:"active_provider"`
	Available      []string `json:"available"`
}

type switchRequest struct {
	Provider string `json:"provider"`
}

// Handler holds dependencies for config endpoints.
type Handler struct {
	AgentMgr *agent.Manager
}

func NewHandler(agentMgr *agent.Manager) *Handler {
	return &Handler{AgentMgr: agentMgr}
}

// Register mounts the config routes on the given router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/config/provider", h.HandleGetProvider).Methods(http.MethodGet)
	r.HandleFunc("/config/provider", h.HandleSwitchProvider).Methods(http.MethodPost)
}

func (h *Handler) HandleGetProvider(w http.ResponseWriter, r *http.Request) {
	resp := providerResponse{
		ActiveProvider: h.AgentMgr.GetActiveProvider(),
		Available:      h.AgentMgr.ProviderNames(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) HandleSwitchProvider(w http.ResponseWriter, r *http.Request) {
	var req switchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.AgentMgr.SetGlobalProvider(req.Provider); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.HandleGetProvider(w, r)
}
