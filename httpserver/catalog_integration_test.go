package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"moviecatalog/httpserver"
	"moviecatalog/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeepingTrackOfMovies(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	db := MustCreateTestDatabase(t)
	MigrateTestDatabase(t, db, "../migrations")
	server := MustCreateServer(t, db)

	_, err := server.UserService.AddSuperuser(context.Background(), user.User{Email: "admin@mail.com", Password: "admin-pass-1"})
	require.NoError(t, err)
	admin := login(t, server, "admin@mail.com", "admin-pass-1")
	require.True(t, admin.IsAdmin)

	rec := serve(server.Router, newJSONRequest(t, http.MethodPost, "/api/auth/register", credentials("fan@mail.com", "fan-pass-12")))
	require.Equal(t, http.StatusNoContent, rec.Code)
	fan := login(t, server, "fan@mail.com", "fan-pass-12")
	assert.False(t, fan.IsAdmin)

	var created httpserver.MovieResponse
	t.Run("admin creates a movie", func(t *testing.T) {
		rec := serve(server.Router, withToken(newJSONRequest(t, http.MethodPost, "/api/movies", validMoviePayload()), admin.Access))

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		decodeAPIResult(t, decodeAPIResponse(t, rec).Result, &created)
		assert.ElementsMatch(t, []string{"Crime", "Drama"}, created.Genres)
		assert.ElementsMatch(t, []int{8, 9}, created.Ratings)
	})

	t.Run("a second movie reuses existing genres", func(t *testing.T) {
		payload := validMoviePayload()
		payload["title"] = "Collateral"
		payload["genres"] = []string{"Crime", "Thriller"}

		rec := serve(server.Router, withToken(newJSONRequest(t, http.MethodPost, "/api/movies", payload), admin.Access))
		require.Equal(t, http.StatusCreated, rec.Code)

		genres := serve(server.Router, httptest.NewRequest(http.MethodGet, "/api/genres", nil))
		var result struct {
			Data []httpserver.NamedResponse `json:"data"`
		}
		decodeAPIResult(t, decodeAPIResponse(t, genres).Result, &result)
		assert.Len(t, result.Data, 3)
	})

	t.Run("regular users cannot create movies", func(t *testing.T) {
		rec := serve(server.Router, withToken(newJSONRequest(t, http.MethodPost, "/api/movies", validMoviePayload()), fan.Access))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("list filters by title and genre", func(t *testing.T) {
		rec := serve(server.Router, httptest.NewRequest(http.MethodGet, "/api/movies?title=HEA&genre=drama", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var page httpserver.PagedMoviesResponse
		decodeAPIResult(t, decodeAPIResponse(t, rec).Result, &page)
		require.Len(t, page.Results, 1)
		assert.Equal(t, created.ID, page.Results[0].ID)
		assert.Nil(t, page.Next)
	})

	t.Run("user rates then re-rates", func(t *testing.T) {
		path := "/api/movies/" + strconv.FormatInt(created.ID, 10) + "/rating"
		first := serve(server.Router, withToken(newJSONRequest(t, http.MethodPut, path, map[string]int{"value": 4}), fan.Access))
		second := serve(server.Router, withToken(newJSONRequest(t, http.MethodPut, path, map[string]int{"value": 6}), fan.Access))

		assert.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, http.StatusOK, second.Code)

		mine := serve(server.Router, withToken(httptest.NewRequest(http.MethodGet, "/api/me/ratings", nil), fan.Access))
		assert.Contains(t, mine.Body.String(), `"value":6`)
		assert.NotContains(t, mine.Body.String(), `"value":4`)
	})

	t.Run("user favorites a movie", func(t *testing.T) {
		path := "/api/movies/" + strconv.FormatInt(created.ID, 10) + "/favorite"
		rec := serve(server.Router, withToken(httptest.NewRequest(http.MethodPost, path, nil), fan.Access))
		again := serve(server.Router, withToken(httptest.NewRequest(http.MethodPost, path, nil), fan.Access))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, http.StatusNoContent, again.Code)
		favorites := serve(server.Router, withToken(httptest.NewRequest(http.MethodGet, "/api/me/favorites", nil), fan.Access))
		assert.Contains(t, favorites.Body.String(), `"title":"Heat"`)
	})

	t.Run("accepts values at the validated length limits", func(t *testing.T) {
		payload := validMoviePayload()
		payload["title"] = strings.Repeat("t", 255)
		payload["year"] = "1995-2000 (TV mini-series)" + strings.Repeat(" ", 200) + "."
		payload["duration"] = strings.Repeat("d", 255)
		payload["releaseDate"] = strings.Repeat("r", 255)
		payload["genres"] = []string{strings.Repeat("g", 255)}
		payload["actors"] = []string{strings.Repeat("a", 255)}

		rec := serve(server.Router, withToken(newJSONRequest(t, http.MethodPost, "/api/movies", payload), admin.Access))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var long httpserver.MovieResponse
		decodeAPIResult(t, decodeAPIResponse(t, rec).Result, &long)
		assert.Equal(t, []string{strings.Repeat("g", 255)}, long.Genres)
		assert.Equal(t, []string{strings.Repeat("a", 255)}, long.Actors)

		payload["genres"] = []string{strings.Repeat("h", 255)}
		path := "/api/movies/" + strconv.FormatInt(long.ID, 10)
		updated := serve(server.Router, withToken(newJSONRequest(t, http.MethodPut, path, payload), admin.Access))
		assert.Equal(t, http.StatusOK, updated.Code, updated.Body.String())
	})

	t.Run("admin deletes the movie", func(t *testing.T) {
		path := "/api/movies/" + strconv.FormatInt(created.ID, 10)
		rec := serve(server.Router, withToken(httptest.NewRequest(http.MethodDelete, path, nil), admin.Access))
		gone := serve(server.Router, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, http.StatusNotFound, gone.Code)
		favorites := serve(server.Router, withToken(httptest.NewRequest(http.MethodGet, "/api/me/favorites", nil), fan.Access))
		assert.NotContains(t, favorites.Body.String(), `"title":"Heat"`)
	})
}

func login(t *testing.T, server *httpserver.Server, email, password string) httpserver.LoginResponse {
	t.Helper()
	rec := serve(server.Router, newJSONRequest(t, http.MethodPost, "/api/auth/login", credentials(email, password)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp httpserver.LoginResponse
	decodeAPIResult(t, decodeAPIResponse(t, rec).Result, &resp)
	return resp
}
