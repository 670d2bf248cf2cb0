package rest

import (
	"encoding/json"
	"net/http"

	"github.com/rocketscienceinc/amoeba-bot/internal/entity"
)

type statusSource interface {
	Status() entity.MatchStatus
}

type StatusHandler interface {
	StatusHandler(w http.ResponseWriter, _ *http.Request)
}

type statusHandler struct {
	source statusSource
}

func NewStatusHandler(source statusSource) StatusHandler {
	return &statusHandler{source: source}
}

// StatusHandler - the bot's current view of the match as JSON.
func (that *statusHandler) StatusHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(that.source.Status()); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
