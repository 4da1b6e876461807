package store

import (
	"context"
	"database/sql"
)

const albumColumns = `SELECT al."AlbumId", al."Title", al."ArtistId", ar."Name"
FROM "Album" al
JOIN "Artist" ar ON ar."ArtistId" = al."ArtistId"`

// ListAlbums returns albums with their artist name, ordered by title.
func (s *Store) ListAlbums(ctx context.Context, filter AlbumFilter) ([]Album, error) {
	q := selectQuery{
		from:    albumColumns,
		orderBy: `al."Title", al."AlbumId"`,
		page:    &filter.Page,
	}
	if filter.Query != "" {
		q.where.Contains(`al."Title"`, filter.Query)
	}
	if filter.ArtistID != nil {
		q.where.Equal(`al."ArtistId"`, *filter.ArtistID)
	}

	query, args := q.build(s.dialect)

	var albums []Album
	err := s.withConn(ctx, func(db querier) error {
		var err error
		albums, err = queryAll(ctx, db, "albums", query, args, scanAlbum)
		return err
	})
	if err != nil {
		return nil, err
	}
	return albums, nil
}

// AlbumByID returns a single album with its artist name.
func (s *Store) AlbumByID(ctx context.Context, id int64) (Album, error) {
	q := selectQuery{from: albumColumns}
	q.where.Equal(`al."AlbumId"`, id)
	query, args := q.build(s.dialect)

	return queryOne(ctx, s, "album", query, args, ErrAlbumNotFound, scanAlbum)
}

// ListAlbumTracks returns the tracks of an existing album ordered by name.
func (s *Store) ListAlbumTracks(ctx context.Context, albumID int64, page Page) ([]AlbumTrack, error) {
	q := selectQuery{
		from: `SELECT t."TrackId", t."Name", t."AlbumId", t."MediaTypeId", t."GenreId",
       t."Composer", t."Milliseconds", t."Bytes", t."UnitPrice"
FROM "Track" t`,
		orderBy: `t."Name", t."TrackId"`,
		page:    &page,
	}
	q.where.Equal(`t."AlbumId"`, albumID)
	query, args := q.build(s.dialect)

	return listChildren(ctx, s, albumParent, albumID, func(db querier) ([]AlbumTrack, error) {
		return queryAll(ctx, db, "album_tracks", query, args, func(row scanner) (AlbumTrack, error) {
			var t AlbumTrack
			err := scanTrackColumns(row, &t)
			return t, err
		})
	})
}

func scanAlbum(row scanner) (Album, error) {
	var (
		a          Album
		artistName sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Title, &a.ArtistID, &artistName); err != nil {
		return Album{}, err
	}
	a.ArtistName = nullString(artistName)
	return a, nil
}
