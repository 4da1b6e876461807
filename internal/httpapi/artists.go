package httpapi

import "net/http"

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListArtists(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	artists, err := s.store.ListArtists(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, artists)
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	artist, err := s.store.ArtistByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleListArtistAlbums(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	albums, err := s.store.ListArtistAlbums(r.Context(), id, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, albums)
}
