package handlers

import (
	"delivery-route-optimizer/internal/api/dto"
	"delivery-route-optimizer/internal/ports"
	"log"
	"net/http"
)

// InstanceHandler exposes read-only instance listing.
type InstanceHandler struct {
	Repo ports.InstanceRepository
}

func (h *InstanceHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	names, err := h.Repo.ListInstances(r.Context())
	if err != nil {
		log.Printf("list instances failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListInstancesResponse{Instances: names})
}
