package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

const chinookFixture = `
CREATE TABLE "Artist" ("ArtistId" INTEGER PRIMARY KEY, "Name" TEXT);
CREATE TABLE "Album" ("AlbumId" INTEGER PRIMARY KEY, "Title" TEXT NOT NULL, "ArtistId" INTEGER NOT NULL);
CREATE TABLE "MediaType" ("MediaTypeId" INTEGER PRIMARY KEY, "Name" TEXT);
CREATE TABLE "Genre" ("GenreId" INTEGER PRIMARY KEY, "Name" TEXT);
CREATE TABLE "Track" (
	"TrackId" INTEGER PRIMARY KEY,
	"Name" TEXT NOT NULL,
	"AlbumId" INTEGER NOT NULL,
	"MediaTypeId" INTEGER NOT NULL,
	"GenreId" INTEGER,
	"Composer" TEXT,
	"Milliseconds" INTEGER NOT NULL,
	"Bytes" INTEGER,
	"UnitPrice" NUMERIC(10,2) NOT NULL
);

INSERT INTO "Artist" VALUES (1, 'AC/DC'), (2, 'Joan Jett');
INSERT INTO "Album" VALUES (1, 'Back In Black', 1), (2, 'I Love Rock ''n'' Roll', 2), (3, 'Unreleased', 1);
INSERT INTO "MediaType" VALUES (1, 'MPEG audio file');
INSERT INTO "Genre" VALUES (1, 'Rock');
INSERT INTO "Track" VALUES
	(1, 'I Love Rock', 2, 1, NULL, NULL, 175000, NULL, 0.99),
	(2, 'Shoot To Thrill', 1, 1, 1, 'Angus Young', 317000, 10000, 0.99),
	(3, 'Shoot To Thrill', 1, 1, 1, 'Angus Young', 317000, 10000, 0.99),
	(4, 'Shoot To Thrill', 1, 1, 1, 'Angus Young', 317000, 10000, 0.99),
	(5, 'Shoot To Thrill', 1, 1, 1, 'Angus Young', 317000, 10000, 1.99);
`

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "chinook.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(chinookFixture); err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	return New(db, SQLite)
}

func trackIDs(tracks []Track) []int64 {
	ids := make([]int64, 0, len(tracks))
	for _, tr := range tracks {
		ids = append(ids, tr.ID)
	}
	return ids
}

func TestSQLiteSearchIgnoresCaseAndKeepsGenrelessTracks(t *testing.T) {
	s := newSQLiteStore(t)

	got, err := s.ListTracks(context.Background(), TrackFilter{Query: "LOVE", Page: Page{Limit: 50}})
	if err != nil {
		t.Fatalf("ListTracks error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only track 1, got %v", trackIDs(got))
	}
	if got[0].Genre != nil || got[0].GenreID != nil {
		t.Fatalf("expected absent genre, got id=%v name=%v", got[0].GenreID, got[0].Genre)
	}
	if got[0].ArtistName == nil || *got[0].ArtistName != "Joan Jett" {
		t.Fatalf("unexpected artist name: %v", got[0].ArtistName)
	}

	track, err := s.TrackByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("TrackByID error: %v", err)
	}
	if track.Genre != nil || track.AlbumTitle != "I Love Rock 'n' Roll" {
		t.Fatalf("unexpected track: %#v", track)
	}
}

func TestSQLitePagesDoNotOverlapOnTiedNames(t *testing.T) {
	s := newSQLiteStore(t)
	albumID := int64(1)

	first, err := s.ListTracks(context.Background(), TrackFilter{AlbumID: &albumID, Page: Page{Limit: 2, Offset: 0}})
	if err != nil {
		t.Fatalf("ListTracks page 1 error: %v", err)
	}
	second, err := s.ListTracks(context.Background(), TrackFilter{AlbumID: &albumID, Page: Page{Limit: 2, Offset: 2}})
	if err != nil {
		t.Fatalf("ListTracks page 2 error: %v", err)
	}

	got := append(trackIDs(first), trackIDs(second)...)
	want := []int64{2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSQLiteFiltersAreConjunctive(t *testing.T) {
	s := newSQLiteStore(t)
	artistID := int64(1)
	minPrice := 1.5

	got, err := s.ListTracks(context.Background(), TrackFilter{ArtistID: &artistID, MinPrice: &minPrice, Page: Page{Limit: 50}})
	if err != nil {
		t.Fatalf("ListTracks error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 5 || got[0].UnitPrice != 1.99 {
		t.Fatalf("expected only track 5, got %#v", got)
	}
}

func TestSQLiteInvertedPriceRangeIsEmpty(t *testing.T) {
	s := newSQLiteStore(t)
	minPrice, maxPrice := 2.0, 1.0

	got, err := s.ListTracks(context.Background(), TrackFilter{MinPrice: &minPrice, MaxPrice: &maxPrice, Page: Page{Limit: 50}})
	if err != nil {
		t.Fatalf("ListTracks error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSQLiteChildListings(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	tracks, err := s.ListAlbumTracks(ctx, 3, Page{Limit: 200})
	if err != nil {
		t.Fatalf("ListAlbumTracks error: %v", err)
	}
	if tracks == nil || len(tracks) != 0 {
		t.Fatalf("expected empty listing for childless album, got %#v", tracks)
	}

	if _, err := s.ListAlbumTracks(ctx, 99, Page{Limit: 200}); !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
	if _, err := s.ListArtistAlbums(ctx, 99, Page{Limit: 50}); !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}

	albums, err := s.ListArtistAlbums(ctx, 1, Page{Limit: 50})
	if err != nil {
		t.Fatalf("ListArtistAlbums error: %v", err)
	}
	if len(albums) != 2 || albums[0].Title != "Back In Black" || albums[1].Title != "Unreleased" {
		t.Fatalf("unexpected albums: %#v", albums)
	}
}

func TestSQLitePreviewAndPing(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping error: %v", err)
	}
	if _, err := s.AudioPreview(ctx, 1); err != nil {
		t.Fatalf("AudioPreview error: %v", err)
	}
	if _, err := s.AudioPreview(ctx, 42); !errors.Is(err, ErrTrackNotFound) {
		t.Fatalf("expected ErrTrackNotFound, got %v", err)
	}
}
