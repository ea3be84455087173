package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type settingsPayload struct {
	SaveDir string `json:"save_dir"`
}

func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, settingsPayload{SaveDir: h.Settings.SaveDir()})
}

func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.SaveDir) == "" {
		http.Error(w, "save_dir required", http.StatusBadRequest)
		return
	}
	if err := h.Settings.SetSaveDir(req.SaveDir); err != nil {
		http.Error(w, "save failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, settingsPayload{SaveDir: h.Settings.SaveDir()})
}
