package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/service"
)

type RollHandler struct {
	rollService *service.RollService
}

func NewRollHandler(rollService *service.RollService) *RollHandler {
	return &RollHandler{rollService: rollService}
}

// Roll commits five assignments in one step. The body is an optional
// filter patch; an empty body uses the defaults.
func (h *RollHandler) Roll(w http.ResponseWriter, r *http.Request) {
	var patch domain.FilterPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("ERROR [roll.Roll]: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.rollService.Roll(patch)
	if err != nil {
		writeServiceError(w, "roll.Roll", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
