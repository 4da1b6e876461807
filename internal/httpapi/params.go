package httpapi

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"chinook/internal/store"
)

// Pagination defaults. Upper bounds live in the validate tags below.
const (
	defaultLimit           = 50
	defaultAlbumTrackLimit = 200
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// FieldError describes one rejected request parameter.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when request parameters are malformed or out of range.
// It is raised before any query reaches the store.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Message)
	}
	return strings.Join(messages, "; ")
}

type listArtistsParams struct {
	Query  string `query:"q"`
	Limit  int    `query:"limit" validate:"min=1,max=200"`
	Offset int    `query:"offset" validate:"min=0"`
}

type pageParams struct {
	Limit  int `query:"limit" validate:"min=1,max=200"`
	Offset int `query:"offset" validate:"min=0"`
}

type albumTracksParams struct {
	Limit  int `query:"limit" validate:"min=1,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

type listAlbumsParams struct {
	Query    string `query:"q"`
	ArtistID *int64 `query:"artist_id"`
	Limit    int    `query:"limit" validate:"min=1,max=200"`
	Offset   int    `query:"offset" validate:"min=0"`
}

type listTracksParams struct {
	Query       string   `query:"q"`
	AlbumID     *int64   `query:"album_id"`
	ArtistID    *int64   `query:"artist_id"`
	GenreID     *int64   `query:"genre_id"`
	MediaTypeID *int64   `query:"media_type_id"`
	MinPrice    *float64 `query:"min_price" validate:"omitempty,gte=0"`
	MaxPrice    *float64 `query:"max_price" validate:"omitempty,gte=0"`
	Limit       int      `query:"limit" validate:"min=1,max=200"`
	Offset      int      `query:"offset" validate:"min=0"`
}

// paramReader parses query values, collecting every malformed one instead of stopping at the first.
type paramReader struct {
	values url.Values
	errs   []FieldError
}

func newParamReader(r *http.Request) *paramReader {
	return &paramReader{values: r.URL.Query()}
}

func (p *paramReader) str(key string) string {
	return p.values.Get(key)
}

func (p *paramReader) integer(key string, fallback int) int {
	raw := p.values.Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, "must be an integer")
		return fallback
	}
	return v
}

// optionalID returns nil when key is absent, meaning no constraint.
func (p *paramReader) optionalID(key string) *int64 {
	raw := p.values.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.fail(key, "must be an integer")
		return nil
	}
	return &v
}

func (p *paramReader) optionalNumber(key string) *float64 {
	raw := p.values.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		p.fail(key, "must be a number")
		return nil
	}
	return &v
}

func (p *paramReader) fail(key, msg string) {
	p.errs = append(p.errs, FieldError{Field: key, Message: key + " " + msg})
}

// finish reports parse failures first, then range violations on the parsed struct.
func (p *paramReader) finish(params any) error {
	if len(p.errs) > 0 {
		return &ValidationError{Fields: p.errs}
	}
	return validateStruct(params)
}

func validateStruct(params any) error {
	err := getValidator().Struct(params)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Fields: []FieldError{{Field: "unknown", Message: err.Error()}}}
	}

	fields := make([]FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: translate(fe)})
	}
	return &ValidationError{Fields: fields}
}

func translate(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, &ValidationError{Fields: []FieldError{{Field: "id", Message: "id must be an integer"}}}
	}
	return id, nil
}

func parseListArtists(r *http.Request) (store.ArtistFilter, error) {
	p := newParamReader(r)
	params := listArtistsParams{
		Query:  p.str("q"),
		Limit:  p.integer("limit", defaultLimit),
		Offset: p.integer("offset", 0),
	}
	if err := p.finish(&params); err != nil {
		return store.ArtistFilter{}, err
	}

	return store.ArtistFilter{
		Query: params.Query,
		Page:  store.Page{Limit: params.Limit, Offset: params.Offset},
	}, nil
}

func parsePage(r *http.Request) (store.Page, error) {
	p := newParamReader(r)
	params := pageParams{
		Limit:  p.integer("limit", defaultLimit),
		Offset: p.integer("offset", 0),
	}
	if err := p.finish(&params); err != nil {
		return store.Page{}, err
	}
	return store.Page{Limit: params.Limit, Offset: params.Offset}, nil
}

func parseAlbumTracksPage(r *http.Request) (store.Page, error) {
	p := newParamReader(r)
	params := albumTracksParams{
		Limit:  p.integer("limit", defaultAlbumTrackLimit),
		Offset: p.integer("offset", 0),
	}
	if err := p.finish(&params); err != nil {
		return store.Page{}, err
	}
	return store.Page{Limit: params.Limit, Offset: params.Offset}, nil
}

func parseListAlbums(r *http.Request) (store.AlbumFilter, error) {
	p := newParamReader(r)
	params := listAlbumsParams{
		Query:    p.str("q"),
		ArtistID: p.optionalID("artist_id"),
		Limit:    p.integer("limit", defaultLimit),
		Offset:   p.integer("offset", 0),
	}
	if err := p.finish(&params); err != nil {
		return store.AlbumFilter{}, err
	}

	return store.AlbumFilter{
		Query:    params.Query,
		ArtistID: params.ArtistID,
		Page:     store.Page{Limit: params.Limit, Offset: params.Offset},
	}, nil
}

func parseListTracks(r *http.Request) (store.TrackFilter, error) {
	p := newParamReader(r)
	params := listTracksParams{
		Query:       p.str("q"),
		AlbumID:     p.optionalID("album_id"),
		ArtistID:    p.optionalID("artist_id"),
		GenreID:     p.optionalID("genre_id"),
		MediaTypeID: p.optionalID("media_type_id"),
		MinPrice:    p.optionalNumber("min_price"),
		MaxPrice:    p.optionalNumber("max_price"),
		Limit:       p.integer("limit", defaultLimit),
		Offset:      p.integer("offset", 0),
	}
	if err := p.finish(&params); err != nil {
		return store.TrackFilter{}, err
	}

	return store.TrackFilter{
		Query:       params.Query,
		AlbumID:     params.AlbumID,
		ArtistID:    params.ArtistID,
		GenreID:     params.GenreID,
		MediaTypeID: params.MediaTypeID,
		MinPrice:    params.MinPrice,
		MaxPrice:    params.MaxPrice,
		Page:        store.Page{Limit: params.Limit, Offset: params.Offset},
	}, nil
}
