package store

import (
	"context"
	"database/sql"
)

// Audio preview payload texts.
const (
	previewMessage = "Audio preview is not implemented yet."
	previewNote    = "This endpoint is a placeholder for future streaming features."
)

// Genre is optional on a track, so it is the only LEFT JOIN.
const trackColumns = `SELECT t."TrackId", t."Name", t."AlbumId", t."MediaTypeId", t."GenreId",
       t."Composer", t."Milliseconds", t."Bytes", t."UnitPrice",
       al."Title", ar."ArtistId", ar."Name", mt."Name", g."Name"
FROM "Track" t
JOIN "Album" al ON al."AlbumId" = t."AlbumId"
JOIN "Artist" ar ON ar."ArtistId" = al."ArtistId"
JOIN "MediaType" mt ON mt."MediaTypeId" = t."MediaTypeId"
LEFT JOIN "Genre" g ON g."GenreId" = t."GenreId"`

// ListTracks returns denormalized tracks ordered by name. Every non-nil filter
// field adds one condition and all conditions must hold.
func (s *Store) ListTracks(ctx context.Context, filter TrackFilter) ([]Track, error) {
	q := selectQuery{
		from:    trackColumns,
		orderBy: `t."Name", t."TrackId"`,
		page:    &filter.Page,
	}
	if filter.Query != "" {
		q.where.Contains(`t."Name"`, filter.Query)
	}
	if filter.AlbumID != nil {
		q.where.Equal(`t."AlbumId"`, *filter.AlbumID)
	}
	if filter.ArtistID != nil {
		q.where.Equal(`ar."ArtistId"`, *filter.ArtistID)
	}
	if filter.GenreID != nil {
		q.where.Equal(`t."GenreId"`, *filter.GenreID)
	}
	if filter.MediaTypeID != nil {
		q.where.Equal(`t."MediaTypeId"`, *filter.MediaTypeID)
	}
	// min_price > max_price is not rejected; the query simply matches nothing.
	if filter.MinPrice != nil {
		q.where.AtLeast(`t."UnitPrice"`, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q.where.AtMost(`t."UnitPrice"`, *filter.MaxPrice)
	}

	query, args := q.build(s.dialect)

	var tracks []Track
	err := s.withConn(ctx, func(db querier) error {
		var err error
		tracks, err = queryAll(ctx, db, "tracks", query, args, scanTrack)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

// TrackByID returns a single denormalized track.
func (s *Store) TrackByID(ctx context.Context, id int64) (Track, error) {
	q := selectQuery{from: trackColumns}
	q.where.Equal(`t."TrackId"`, id)
	query, args := q.build(s.dialect)

	return queryOne(ctx, s, "track", query, args, ErrTrackNotFound, scanTrack)
}

// AudioPreview confirms the track exists and returns the placeholder payload.
// No audio content is read.
func (s *Store) AudioPreview(ctx context.Context, id int64) (AudioPreview, error) {
	err := s.withConn(ctx, func(db querier) error {
		return s.exists(ctx, db, trackParent, id)
	})
	if err != nil {
		return AudioPreview{}, err
	}

	return AudioPreview{
		TrackID: id,
		Message: previewMessage,
		Note:    previewNote,
	}, nil
}

func scanTrack(row scanner) (Track, error) {
	var (
		t          Track
		artistName sql.NullString
		mediaType  sql.NullString
		genre      sql.NullString
	)
	if err := scanTrackColumns(row, &t.AlbumTrack, &t.AlbumTitle, &t.ArtistID, &artistName, &mediaType, &genre); err != nil {
		return Track{}, err
	}
	t.ArtistName = nullString(artistName)
	t.MediaType = nullString(mediaType)
	t.Genre = nullString(genre)
	return t, nil
}

// scanTrackColumns reads the nine Track table columns followed by any extra joined columns.
func scanTrackColumns(row scanner, t *AlbumTrack, extra ...any) error {
	var (
		genreID  sql.NullInt64
		composer sql.NullString
		bytes    sql.NullInt64
	)

	dest := append([]any{
		&t.ID, &t.Name, &t.AlbumID, &t.MediaTypeID, &genreID,
		&composer, &t.Milliseconds, &bytes, &t.UnitPrice,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}

	t.GenreID = nullInt64(genreID)
	t.Composer = nullString(composer)
	t.Bytes = nullInt64(bytes)
	return nil
}
