package httpapi

import "net/http"

func (s *Server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListAlbums(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	albums, err := s.store.ListAlbums(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, albums)
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	album, err := s.store.AlbumByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, album)
}

// handleListAlbumTracks allows larger pages than other listings (up to 500, default 200).
func (s *Server) handleListAlbumTracks(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := parseAlbumTracksPage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tracks, err := s.store.ListAlbumTracks(r.Context(), id, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tracks)
}
