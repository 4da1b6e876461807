package store

// Artist is a row of the Artist table.
type Artist struct {
	ID   int64   `json:"artist_id"`
	Name *string `json:"name"`
}

// ArtistAlbum is an album as listed under its artist.
type ArtistAlbum struct {
	ID       int64  `json:"album_id"`
	Title    string `json:"title"`
	ArtistID int64  `json:"artist_id"`
}

// Album is an album together with its artist's name.
type Album struct {
	ID         int64   `json:"album_id"`
	Title      string  `json:"title"`
	ArtistID   int64   `json:"artist_id"`
	ArtistName *string `json:"artist_name"`
}

// AlbumTrack is a track as listed under its album, without joined names.
type AlbumTrack struct {
	ID           int64   `json:"track_id"`
	Name         string  `json:"name"`
	AlbumID      int64   `json:"album_id"`
	MediaTypeID  int64   `json:"media_type_id"`
	GenreID      *int64  `json:"genre_id"`
	Composer     *string `json:"composer"`
	Milliseconds int64   `json:"milliseconds"`
	Bytes        *int64  `json:"bytes"`
	UnitPrice    float64 `json:"unit_price"`
}

// Track is a denormalized track carrying the names of its album, artist, media type and genre.
type Track struct {
	AlbumTrack
	AlbumTitle string  `json:"album_title"`
	ArtistID   int64   `json:"artist_id"`
	ArtistName *string `json:"artist_name"`
	MediaType  *string `json:"media_type"`
	Genre      *string `json:"genre"`
}

// AudioPreview is the placeholder returned for track previews.
type AudioPreview struct {
	TrackID int64  `json:"track_id"`
	Message string `json:"message"`
	Note    string `json:"note"`
}

// ArtistFilter constrains ListArtists.
type ArtistFilter struct {
	Query string
	Page  Page
}

// AlbumFilter constrains ListAlbums.
type AlbumFilter struct {
	Query    string
	ArtistID *int64
	Page     Page
}

// TrackFilter constrains ListTracks. Nil fields impose no constraint.
type TrackFilter struct {
	Query       string
	AlbumID     *int64
	ArtistID    *int64
	GenreID     *int64
	MediaTypeID *int64
	MinPrice    *float64
	MaxPrice    *float64
	Page        Page
}
