package store

import (
	"context"
	"database/sql"
)

const artistColumns = `SELECT ar."ArtistId", ar."Name"
FROM "Artist" ar`

// ListArtists returns artists ordered by name, optionally narrowed by a name search.
func (s *Store) ListArtists(ctx context.Context, filter ArtistFilter) ([]Artist, error) {
	q := selectQuery{
		from:    artistColumns,
		orderBy: `ar."Name", ar."ArtistId"`,
		page:    &filter.Page,
	}
	if filter.Query != "" {
		q.where.Contains(`ar."Name"`, filter.Query)
	}

	query, args := q.build(s.dialect)

	var artists []Artist
	err := s.withConn(ctx, func(db querier) error {
		var err error
		artists, err = queryAll(ctx, db, "artists", query, args, scanArtist)
		return err
	})
	if err != nil {
		return nil, err
	}
	return artists, nil
}

// ArtistByID returns a single artist.
func (s *Store) ArtistByID(ctx context.Context, id int64) (Artist, error) {
	q := selectQuery{from: artistColumns}
	q.where.Equal(`ar."ArtistId"`, id)
	query, args := q.build(s.dialect)

	return queryOne(ctx, s, "artist", query, args, ErrArtistNotFound, scanArtist)
}

// ListArtistAlbums returns the albums of an existing artist ordered by title.
func (s *Store) ListArtistAlbums(ctx context.Context, artistID int64, page Page) ([]ArtistAlbum, error) {
	q := selectQuery{
		from: `SELECT al."AlbumId", al."Title", al."ArtistId"
FROM "Album" al`,
		orderBy: `al."Title", al."AlbumId"`,
		page:    &page,
	}
	q.where.Equal(`al."ArtistId"`, artistID)
	query, args := q.build(s.dialect)

	return listChildren(ctx, s, artistParent, artistID, func(db querier) ([]ArtistAlbum, error) {
		return queryAll(ctx, db, "artist_albums", query, args, func(rows scanner) (ArtistAlbum, error) {
			var a ArtistAlbum
			err := rows.Scan(&a.ID, &a.Title, &a.ArtistID)
			return a, err
		})
	})
}

func scanArtist(row scanner) (Artist, error) {
	var (
		a    Artist
		name sql.NullString
	)
	if err := row.Scan(&a.ID, &name); err != nil {
		return Artist{}, err
	}
	a.Name = nullString(name)
	return a, nil
}
