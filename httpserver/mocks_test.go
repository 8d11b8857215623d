package httpserver_test

import (
	"context"

	"moviecatalog/auth"
	"moviecatalog/movie"
	"moviecatalog/rating"
	"moviecatalog/user"

	"github.com/stretchr/testify/mock"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) ListMovies(ctx context.Context, f movie.Filter, p movie.Page) (movie.Paged, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(movie.Paged), args.Error(1)
}

func (m *MockMovieService) GetMovie(ctx context.Context, id int64) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) CreateMovie(ctx context.Context, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) UpdateMovie(ctx context.Context, id int64, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, id, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) DeleteMovie(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMovieService) ListGenres(ctx context.Context) ([]movie.Genre, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movie.Genre), args.Error(1)
}

func (m *MockMovieService) ListActors(ctx context.Context) ([]movie.Actor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movie.Actor), args.Error(1)
}

type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Rate(ctx context.Context, userID, movieID int64, value int) (rating.Rating, bool, error) {
	args := m.Called(ctx, userID, movieID, value)
	return args.Get(0).(rating.Rating), args.Bool(1), args.Error(2)
}

func (m *MockRatingService) RemoveRating(ctx context.Context, userID, movieID int64) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockRatingService) ListMovieRatings(ctx context.Context, movieID int64) ([]rating.Rating, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).([]rating.Rating), args.Error(1)
}

func (m *MockRatingService) ListUserRatings(ctx context.Context, userID int64) ([]rating.Rating, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]rating.Rating), args.Error(1)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) AddFavorite(ctx context.Context, userID, movieID int64) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockFavoriteService) RemoveFavorite(ctx context.Context, userID, movieID int64) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockFavoriteService) ListFavorites(ctx context.Context, userID int64) ([]movie.Movie, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) AddUser(ctx context.Context, u user.User) (user.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) AddSuperuser(ctx context.Context, u user.User) (user.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id int64) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (user.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (auth.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) GoogleAuthURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) LoginWithGoogle(ctx context.Context, code string) (auth.TokenPair, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}
