package favorite

import (
	"context"
	"moviecatalog/errs"
	"moviecatalog/movie"
)

var (
	ErrInvalidUserID  = errs.Errorf(errs.EINVALID, "favorite: invalid user id")
	ErrInvalidMovieID = errs.Errorf(errs.EINVALID, "favorite: invalid movie id")
)

type Service interface {
	AddFavorite(ctx context.Context, userID, movieID int64) error
	RemoveFavorite(ctx context.Context, userID, movieID int64) error
	ListFavorites(ctx context.Context, userID int64) ([]movie.Movie, error)
}

type Repository interface {
	Add(ctx context.Context, userID, movieID int64) error
	Remove(ctx context.Context, userID, movieID int64) error
	MoviesOf(ctx context.Context, userID int64) ([]movie.Movie, error)
}

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

// AddFavorite is idempotent: favoriting a movie twice keeps a single entry.
func (uc *Usecase) AddFavorite(ctx context.Context, userID, movieID int64) error {
	if err := validateIDs(userID, movieID); err != nil {
		return err
	}
	if err := uc.movies.Exists(ctx, movieID); err != nil {
		return err
	}
	return uc.r.Add(ctx, userID, movieID)
}

func (uc *Usecase) RemoveFavorite(ctx context.Context, userID, movieID int64) error {
	if err := validateIDs(userID, movieID); err != nil {
		return err
	}
	return uc.r.Remove(ctx, userID, movieID)
}

func (uc *Usecase) ListFavorites(ctx context.Context, userID int64) ([]movie.Movie, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	return uc.r.MoviesOf(ctx, userID)
}

func validateIDs(userID, movieID int64) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	if movieID <= 0 {
		return ErrInvalidMovieID
	}
	return nil
}
