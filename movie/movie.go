package movie

import (
	"moviecatalog/errs"
	"strings"
)

const (
	MinScore = 0
	MaxScore = 10
)

var (
	ErrMovieNotFound        = errs.Errorf(errs.ENOTFOUND, "movie not found")
	ErrInvalidID            = errs.Errorf(errs.EINVALID, "invalid movie id")
	ErrInvalidTitle         = errs.Errorf(errs.EINVALID, "movie: invalid title")
	ErrInvalidYear          = errs.Errorf(errs.EINVALID, "movie: invalid year")
	ErrInvalidContentRating = errs.Errorf(errs.EINVALID, "movie: content rating must not be negative")
	ErrInvalidAverageRating = errs.Errorf(errs.EINVALID, "movie: average rating must be between 0 and 10")
	ErrInvalidIMDBRating    = errs.Errorf(errs.EINVALID, "movie: imdb rating must be between 0 and 10")
	ErrInvalidRatingValue   = errs.Errorf(errs.EINVALID, "movie: rating values must be between 0 and 10")
	ErrInvalidGenreName     = errs.Errorf(errs.EINVALID, "movie: genre name must not be blank")
	ErrInvalidActorName     = errs.Errorf(errs.EINVALID, "movie: actor name must not be blank")
	ErrInvalidQuery         = errs.Errorf(errs.EINVALID, "invalid movie query")
)

type Movie struct {
	ID            int64
	Title         string
	Year          string
	Genres        []string
	Actors        []string
	Ratings       []int
	Poster        string
	ContentRating int
	Duration      string
	ReleaseDate   string
	AverageRating float64
	OriginalTitle string
	Storyline     string
	IMDBRating    float64
	PosterURL     string
}

type Genre struct {
	ID   int64
	Name string
}

type Actor struct {
	ID   int64
	Name string
}

// Validate checks the fields every stored movie must satisfy. Request level
// requirements (poster, storyline, ...) are enforced by the HTTP layer.
func (m Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrInvalidTitle
	}
	if strings.TrimSpace(m.Year) == "" {
		return ErrInvalidYear
	}
	if m.ContentRating < 0 {
		return ErrInvalidContentRating
	}
	if !inScoreRange(m.AverageRating) {
		return ErrInvalidAverageRating
	}
	if !inScoreRange(m.IMDBRating) {
		return ErrInvalidIMDBRating
	}
	for _, v := range m.Ratings {
		if v < MinScore || v > MaxScore {
			return ErrInvalidRatingValue
		}
	}
	for _, g := range m.Genres {
		if strings.TrimSpace(g) == "" {
			return ErrInvalidGenreName
		}
	}
	for _, a := range m.Actors {
		if strings.TrimSpace(a) == "" {
			return ErrInvalidActorName
		}
	}
	return nil
}

// Normalize trims text fields and removes duplicate genre and actor names,
// keeping the first occurrence.
func (m Movie) Normalize() Movie {
	m.Title = strings.TrimSpace(m.Title)
	m.Year = strings.TrimSpace(m.Year)
	m.OriginalTitle = strings.TrimSpace(m.OriginalTitle)
	m.Genres = uniqueNames(m.Genres)
	m.Actors = uniqueNames(m.Actors)
	return m
}

func inScoreRange(v float64) bool {
	return v >= MinScore && v <= MaxScore
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
