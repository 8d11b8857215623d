package httpserver

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"moviecatalog/movie"
)

// MovieRequest is the payload of movie creation and full replacement.
type MovieRequest struct {
	Title         string        `json:"title" validate:"required,notblank,max=255"`
	Year          string        `json:"year" validate:"required,notblank,max=255"`
	Genres        []string      `json:"genres" validate:"required,min=1,dive,notblank,max=255"`
	Actors        []string      `json:"actors" validate:"required,min=1,dive,notblank,max=255"`
	Ratings       []int         `json:"ratings" validate:"required,min=1,dive,min=0,max=10"`
	Poster        string        `json:"poster" validate:"required,notblank,max=255"`
	ContentRating *int          `json:"contentRating" validate:"required,min=0"`
	Duration      string        `json:"duration" validate:"required,notblank,max=255"`
	ReleaseDate   string        `json:"releaseDate" validate:"required,notblank,max=255"`
	AverageRating *float64      `json:"averageRating" validate:"required,min=0,max=10"`
	OriginalTitle string        `json:"originalTitle" validate:"max=255"`
	Storyline     string        `json:"storyline" validate:"required,notblank,max=255"`
	IMDBRating    FlexibleFloat `json:"imdbRating" validate:"min=0,max=10"`
	PosterURL     string        `json:"posterurl" validate:"required,notblank,max=255"`
}

func (r MovieRequest) ToMovie() movie.Movie {
	m := movie.Movie{
		Title:         r.Title,
		Year:          r.Year,
		Genres:        r.Genres,
		Actors:        r.Actors,
		Ratings:       r.Ratings,
		Poster:        r.Poster,
		Duration:      r.Duration,
		ReleaseDate:   r.ReleaseDate,
		OriginalTitle: r.OriginalTitle,
		Storyline:     r.Storyline,
		IMDBRating:    float64(r.IMDBRating),
		PosterURL:     r.PosterURL,
	}
	if r.ContentRating != nil {
		m.ContentRating = *r.ContentRating
	}
	if r.AverageRating != nil {
		m.AverageRating = *r.AverageRating
	}
	return m
}

// FlexibleFloat accepts a JSON number, a numeric string, an empty string or
// null. Empty values decode to zero.
type FlexibleFloat float64

func (f *FlexibleFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}

	raw := string(b)
	if b[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid number %s", raw)
		}
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			*f = 0
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", string(b))
	}
	*f = FlexibleFloat(v)
	return nil
}

type RatingRequest struct {
	Value *int `json:"value" validate:"required,min=0,max=10"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,notblank,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,notblank,max=72"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required,notblank"`
}
