package api

import (
	"encoding/json"
	"net/http"

	"github.com/loopdeck/loopdeck-agent/internal/export"
)

func exportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req export.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		snap := cfg.Controller.Snapshot()
		if snap.VideoID == "" {
			WriteError(w, http.StatusConflict, "no video loaded", "NO_VIDEO")
			return
		}
		if len(snap.Segments) == 0 {
			WriteError(w, http.StatusUnprocessableEntity, "no segments to export", "NO_SEGMENTS")
			return
		}

		if req.Title == "" {
			if snap.Title != "" {
				req.Title = snap.Title
			} else {
				req.Title = snap.VideoID
			}
		}

		result, err := cfg.Exporter.Export(req, snap.Segments, videoMediaRef(snap.VideoID))
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusOK, result)
	}
}
