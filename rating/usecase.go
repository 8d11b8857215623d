package rating

import (
	"context"
	"errors"
)

type Service interface {
	Rate(ctx context.Context, userID, movieID int64, value int) (Rating, bool, error)
	RemoveRating(ctx context.Context, userID, movieID int64) error
	ListMovieRatings(ctx context.Context, movieID int64) ([]Rating, error)
	ListUserRatings(ctx context.Context, userID int64) ([]Rating, error)
}

type Repository interface {
	FindByUserAndMovie(ctx context.Context, userID, movieID int64) (Rating, error)
	Create(ctx context.Context, r Rating) (Rating, error)
	UpdateValue(ctx context.Context, id int64, value int) (Rating, error)
	Delete(ctx context.Context, id int64) error
	ListByMovie(ctx context.Context, movieID int64) ([]Rating, error)
	ListByUser(ctx context.Context, userID int64) ([]Rating, error)
}

// MovieChecker reports whether a movie exists, returning
// movie.ErrMovieNotFound when it does not.
type MovieChecker interface {
	Exists(ctx context.Context, id int64) error
}

type Usecase struct {
	r      Repository
	movies MovieChecker
}

func NewUsecase(r Repository, movies MovieChecker) *Usecase {
	return &Usecase{r: r, movies: movies}
}

// Rate stores the user's score for a movie, replacing a previous one. The
// boolean result reports whether a new rating was created.
//
// Uniqueness per (user, movie) relies on the lookup below; two concurrent
// requests from the same user may both create a rating.
func (uc *Usecase) Rate(ctx context.Context, userID, movieID int64, value int) (Rating, bool, error) {
	candidate := Rating{MovieID: movieID, UserID: &userID, Value: value}
	if userID <= 0 {
		return Rating{}, false, ErrInvalidUserID
	}
	if err := candidate.Validate(); err != nil {
		return Rating{}, false, err
	}
	if err := uc.movies.Exists(ctx, movieID); err != nil {
		return Rating{}, false, err
	}

	existing, err := uc.r.FindByUserAndMovie(ctx, userID, movieID)
	switch {
	case err == nil:
		updated, err := uc.r.UpdateValue(ctx, existing.ID, value)
		return updated, false, err
	case errors.Is(err, ErrRatingNotFound):
		created, err := uc.r.Create(ctx, candidate)
		return created, err == nil, err
	default:
		return Rating{}, false, err
	}
}

func (uc *Usecase) RemoveRating(ctx context.Context, userID, movieID int64) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	if movieID <= 0 {
		return ErrInvalidMovieID
	}
	existing, err := uc.r.FindByUserAndMovie(ctx, userID, movieID)
	if err != nil {
		return err
	}
	return uc.r.Delete(ctx, existing.ID)
}

func (uc *Usecase) ListMovieRatings(ctx context.Context, movieID int64) ([]Rating, error) {
	if movieID <= 0 {
		return nil, ErrInvalidMovieID
	}
	if err := uc.movies.Exists(ctx, movieID); err != nil {
		return nil, err
	}
	return uc.r.ListByMovie(ctx, movieID)
}

func (uc *Usecase) ListUserRatings(ctx context.Context, userID int64) ([]Rating, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	return uc.r.ListByUser(ctx, userID)
}
