package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chinook/internal/http/middleware"
	"chinook/internal/logging"
	"chinook/internal/store"
)

// CatalogStore is the read-only catalog the handlers query.
type CatalogStore interface {
	Ping(ctx context.Context) error

	ListArtists(ctx context.Context, filter store.ArtistFilter) ([]store.Artist, error)
	ArtistByID(ctx context.Context, id int64) (store.Artist, error)
	ListArtistAlbums(ctx context.Context, artistID int64, page store.Page) ([]store.ArtistAlbum, error)

	ListAlbums(ctx context.Context, filter store.AlbumFilter) ([]store.Album, error)
	AlbumByID(ctx context.Context, id int64) (store.Album, error)
	ListAlbumTracks(ctx context.Context, albumID int64, page store.Page) ([]store.AlbumTrack, error)

	ListTracks(ctx context.Context, filter store.TrackFilter) ([]store.Track, error)
	TrackByID(ctx context.Context, id int64) (store.Track, error)
	AudioPreview(ctx context.Context, id int64) (store.AudioPreview, error)
}

// Server wires HTTP handlers to the catalog store.
type Server struct {
	store CatalogStore
}

// New configures a Server with the given store.
func New(store CatalogStore) *Server {
	return &Server{store: store}
}

// Routes exposes the catalog endpoints.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Metrics)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.HandleFunc("/artists", s.handleListArtists).Methods(http.MethodGet)
	router.HandleFunc("/artists/{id}", s.handleGetArtist).Methods(http.MethodGet)
	router.HandleFunc("/artists/{id}/albums", s.handleListArtistAlbums).Methods(http.MethodGet)

	router.HandleFunc("/albums", s.handleListAlbums).Methods(http.MethodGet)
	router.HandleFunc("/albums/{id}", s.handleGetAlbum).Methods(http.MethodGet)
	router.HandleFunc("/albums/{id}/tracks", s.handleListAlbumTracks).Methods(http.MethodGet)

	router.HandleFunc("/tracks", s.handleListTracks).Methods(http.MethodGet)
	router.HandleFunc("/tracks/{id}", s.handleGetTrack).Methods(http.MethodGet)
	router.HandleFunc("/tracks/{id}/audio-preview", s.handleAudioPreview).Methods(http.MethodGet)

	// Router middleware only runs on matched routes, so the fallbacks are instrumented directly.
	router.NotFoundHandler = middleware.Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	}))
	router.MethodNotAllowedHandler = middleware.Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}))

	return router
}

type errorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// writeError maps err onto the response: validation 422, not found 404, anything else 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation failed",
			Details: validationErr.Fields,
		})
	case errors.Is(err, store.ErrArtistNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Artist not found"})
	case errors.Is(err, store.ErrAlbumNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Album not found"})
	case errors.Is(err, store.ErrTrackNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Track not found"})
	default:
		logging.WithContext(r.Context()).Error().Err(err).
			Str("path", r.URL.Path).
			Msg("catalog query failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
