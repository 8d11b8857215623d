package rating

import (
	"moviecatalog/errs"
	"moviecatalog/movie"
	"time"
)

var (
	ErrRatingNotFound = errs.Errorf(errs.ENOTFOUND, "rating not found")
	ErrInvalidValue   = errs.Errorf(errs.EINVALID, "rating: value must be between 0 and 10")
	ErrInvalidUserID  = errs.Errorf(errs.EINVALID, "rating: invalid user id")
	ErrInvalidMovieID = errs.Errorf(errs.EINVALID, "rating: invalid movie id")
)

// Rating is a score given to a movie. UserID is nil for ratings imported
// together with the movie itself.
type Rating struct {
	ID        int64
	MovieID   int64
	UserID    *int64
	Value     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Rating) Validate() error {
	if r.MovieID <= 0 {
		return ErrInvalidMovieID
	}
	if r.UserID != nil && *r.UserID <= 0 {
		return ErrInvalidUserID
	}
	if r.Value < movie.MinScore || r.Value > movie.MaxScore {
		return ErrInvalidValue
	}
	return nil
}
