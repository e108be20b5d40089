package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/loopdeck/loopdeck-agent/internal/link"
	"github.com/loopdeck/loopdeck-agent/internal/metrics"
	"github.com/loopdeck/loopdeck-agent/internal/player"
	"github.com/loopdeck/loopdeck-agent/internal/session"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(metrics.RequestMiddleware(cfg.Metrics))
	}

	r.Get("/health", healthHandler(cfg))
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler(func() {
			cfg.Metrics.SetActiveSegments(len(cfg.Controller.Snapshot().Segments))
		}))
	}

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/status", statusHandler(cfg))

		r.Route("/session", func(r chi.Router) {
			r.Get("/", getSessionHandler(cfg))
			r.Get("/link", getLinkHandler(cfg))
			r.Post("/load", loadHandler(cfg))
			r.Post("/input", inputHandler(cfg))

			r.Route("/draft", func(r chi.Router) {
				r.Put("/", updateDraftHandler(cfg))
				r.Post("/mark-start", markStartHandler(cfg))
				r.Post("/mark-end", markEndHandler(cfg))
			})

			r.Route("/segments", func(r chi.Router) {
				r.Post("/", commitDraftHandler(cfg))
				r.Delete("/", clearSegmentsHandler(cfg))
				r.Delete("/{id}", removeSegmentHandler(cfg))
			})

			r.Route("/selection", func(r chi.Router) {
				r.Put("/", selectHandler(cfg))
				r.Post("/next", selectNextHandler(cfg))
				r.Post("/previous", selectPreviousHandler(cfg))
			})
		})

		r.Route("/playback", func(r chi.Router) {
			r.Post("/play", playHandler(cfg))
			r.Post("/pause", pauseHandler(cfg))
			r.Post("/stop", stopHandler(cfg))
			r.Post("/seek", seekHandler(cfg))
			r.Put("/rate", rateHandler(cfg))
			r.Put("/looping", loopingHandler(cfg))
			r.Post("/events", playerEventHandler(cfg))
		})

		r.Post("/export", exportHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:   "ok",
			Version:  cfg.Version,
			UptimeS:  uptime,
			DeviceID: cfg.DeviceID,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := cfg.Controller.Snapshot()

		state := "idle"
		if snap.VideoID != "" {
			state = "loaded"
		}

		WriteJSON(w, http.StatusOK, StatusResponse{
			State:         state,
			SessionID:     snap.SessionID,
			VideoID:       snap.VideoID,
			Title:         snap.Title,
			SegmentsCount: len(snap.Segments),
			Looping:       snap.Playback.Looping,
			Playing:       snap.Playback.IsPlaying,
		})
	}
}

func getSessionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, SnapshotToResponse(cfg.Controller.Snapshot()))
	}
}

func getLinkHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := cfg.Controller.Link()
		if l == "" {
			WriteError(w, http.StatusNotFound, "no video loaded", "NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusOK, LinkResponse{Link: l})
	}
}

func loadHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Input == "" {
			WriteError(w, http.StatusBadRequest, "input is required", "BAD_REQUEST")
			return
		}

		if err := cfg.Controller.LoadFrom(r.Context(), req.Input); err != nil {
			writeControllerError(w, err)
			return
		}
		if cfg.Metrics != nil {
			cfg.Metrics.IncSessionsLoaded()
		}
		WriteJSON(w, http.StatusOK, SnapshotToResponse(cfg.Controller.Snapshot()))
	}
}

func inputHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InputRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		cfg.Controller.SetInputText(req.Text)
		WriteJSON(w, http.StatusOK, SnapshotToResponse(cfg.Controller.Snapshot()))
	}
}

func updateDraftHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DraftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		cfg.Controller.UpdateDraft(req.Label, req.StartText, req.EndText)
		WriteJSON(w, http.StatusOK, SnapshotToResponse(cfg.Controller.Snapshot()))
	}
}

func markStartHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Controller.MarkStart()
		WriteJSON(w, http.StatusOK, SnapshotToResponse(cfg.Controller.Snapshot()))
	}
}

func markEndHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Controller.MarkEnd()
		WriteJSON(w, http.StatusOK, SnapshotToResponse(cfg.Controller.Snapshot()))
	}
}

func commitDraftHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := cfg.Controller.CommitDraft(r.Context())
		if err != nil {
			writeControllerError(w, err)
			return
		}
		if cfg.Metrics != nil {
			cfg.Metrics.IncSegmentsCommitted()
		}
		WriteJSON(w, http.StatusCreated, SegmentToResponse(s))
	}
}

func clearSegmentsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Controller.ClearAll(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

func removeSegmentHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "segment id required", "BAD_REQUEST")
			return
		}

		if err := cfg.Controller.Remove(r.Context(), id); err != nil {
			writeControllerError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func selectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.ID == "" {
			WriteError(w, http.StatusBadRequest, "segment id required", "BAD_REQUEST")
			return
		}

		if err := cfg.Controller.Select(r.Context(), req.ID); err != nil {
			writeControllerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, SnapshotToResponse(cfg.Controller.Snapshot()))
	}
}

func selectNextHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Controller.SelectNext(r.Context())
		WriteJSON(w, http.StatusOK, SnapshotToResponse(cfg.Controller.Snapshot()))
	}
}

func selectPreviousHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Controller.SelectPrevious(r.Context())
		WriteJSON(w, http.StatusOK, SnapshotToResponse(cfg.Controller.Snapshot()))
	}
}

func playHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Controller.Play()
		w.WriteHeader(http.StatusNoContent)
	}
}

func pauseHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Controller.Pause()
		w.WriteHeader(http.StatusNoContent)
	}
}

func stopHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Controller.Stop()
		w.WriteHeader(http.StatusNoContent)
	}
}

func seekHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SeekRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		cfg.Controller.SeekTo(req.Seconds)
		w.WriteHeader(http.StatusNoContent)
	}
}

func rateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Rate <= 0 {
			WriteError(w, http.StatusBadRequest, "rate must be positive", "BAD_REQUEST")
			return
		}
		cfg.Controller.SetRate(req.Rate)
		w.WriteHeader(http.StatusNoContent)
	}
}

func loopingHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoopingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		cfg.Controller.SetLooping(r.Context(), req.Enabled)
		w.WriteHeader(http.StatusNoContent)
	}
}

func playerEventHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlayerEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		switch req.Event {
		case "ready":
			cfg.Controller.HandleReady(player.Media{
				ID:       req.VideoID,
				Title:    req.Title,
				Duration: req.Duration,
			})
		case "state":
			cfg.Controller.HandleStateChange(player.State(req.State))
		case "time":
			cfg.Controller.HandleTime(req.CurrentTime, req.Duration)
		default:
			WriteError(w, http.StatusBadRequest, "unknown event", "BAD_REQUEST")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeControllerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidVideoRef):
		WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_VIDEO_REF")
	case errors.Is(err, session.ErrDraftIncomplete):
		WriteError(w, http.StatusBadRequest, err.Error(), "DRAFT_INCOMPLETE")
	case errors.Is(err, session.ErrSegmentTooShort):
		WriteError(w, http.StatusBadRequest, err.Error(), "SEGMENT_TOO_SHORT")
	case errors.Is(err, session.ErrNoSuchSegment):
		WriteError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	default:
		WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
}

// videoMediaRef is the plain watch URL used as the media reference in
// exports, without the segments parameter.
func videoMediaRef(videoID string) string {
	return link.Build(videoID, nil)
}
