package httpapi

import "net/http"

func (s *Server) handleListTracks(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListTracks(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tracks, err := s.store.ListTracks(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tracks)
}

func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	track, err := s.store.TrackByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, track)
}

func (s *Server) handleAudioPreview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	preview, err := s.store.AudioPreview(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, preview)
}
