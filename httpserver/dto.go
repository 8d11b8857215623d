package httpserver

import (
	"time"

	"moviecatalog/movie"
	"moviecatalog/rating"
	"moviecatalog/user"
)

type MovieResponse struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Year          string   `json:"year"`
	Genres        []string `json:"genres"`
	Actors        []string `json:"actors"`
	Ratings       []int    `json:"ratings"`
	Poster        string   `json:"poster"`
	ContentRating int      `json:"contentRating"`
	Duration      string   `json:"duration"`
	ReleaseDate   string   `json:"releaseDate"`
	AverageRating float64  `json:"averageRating"`
	OriginalTitle string   `json:"originalTitle"`
	Storyline     string   `json:"storyline"`
	IMDBRating    float64  `json:"imdbRating"`
	PosterURL     string   `json:"posterurl"`
}

func newMovieResponse(m movie.Movie) MovieResponse {
	return MovieResponse{
		ID:            m.ID,
		Title:         m.Title,
		Year:          m.Year,
		Genres:        nonNil(m.Genres),
		Actors:        nonNil(m.Actors),
		Ratings:       nonNil(m.Ratings),
		Poster:        m.Poster,
		ContentRating: m.ContentRating,
		Duration:      m.Duration,
		ReleaseDate:   m.ReleaseDate,
		AverageRating: m.AverageRating,
		OriginalTitle: m.OriginalTitle,
		Storyline:     m.Storyline,
		IMDBRating:    m.IMDBRating,
		PosterURL:     m.PosterURL,
	}
}

func newMovieResponses(movies []movie.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, newMovieResponse(m))
	}
	return out
}

// PagedMoviesResponse is one page of a movie listing. Next is the absolute
// URL of the following page, or null on the last one.
type PagedMoviesResponse struct {
	Results    []MovieResponse `json:"results"`
	Next       *string         `json:"next"`
	TotalPages int             `json:"totalPages"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
}

type NamedResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newGenreResponses(genres []movie.Genre) []NamedResponse {
	out := make([]NamedResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, NamedResponse{ID: g.ID, Name: g.Name})
	}
	return out
}

func newActorResponses(actors []movie.Actor) []NamedResponse {
	out := make([]NamedResponse, 0, len(actors))
	for _, a := range actors {
		out = append(out, NamedResponse{ID: a.ID, Name: a.Name})
	}
	return out
}

type RatingResponse struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movieId"`
	UserID    *int64    `json:"userId"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newRatingResponse(r rating.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		MovieID:   r.MovieID,
		UserID:    r.UserID,
		Value:     r.Value,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func newRatingResponses(ratings []rating.Rating) []RatingResponse {
	out := make([]RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, newRatingResponse(r))
	}
	return out
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	IsSuperuser bool      `json:"isSuperuser"`
	IsActive    bool      `json:"isActive"`
	DateJoined  time.Time `json:"dateJoined"`
}

func newUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
		DateJoined:  u.DateJoined,
	}
}

func newUserResponses(users []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	return out
}

type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	IsAdmin bool   `json:"isAdmin"`
}

type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
