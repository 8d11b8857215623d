package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"moviecatalog/errs"
	"moviecatalog/movie"
	"moviecatalog/pkg/metrics"

	"github.com/labstack/echo/v4"
)

var errInvalidPage = errs.Errorf(errs.ENOTFOUND, "invalid page")

func (s *Server) RegisterPublicMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/:id", s.handleGetMovie)
	g.GET("/genres", s.handleListGenres)
	g.GET("/actors", s.handleListActors)
}

func (s *Server) RegisterPrivateMovieRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/movies", s.handleCreateMovie, m...)
	g.PUT("/movies/:id", s.handleUpdateMovie, m...)
	g.DELETE("/movies/:id", s.handleDeleteMovie, m...)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Page through movies, optionally filtered by title substring and genre name
// @Tags movies
// @Produce json
// @Param title query string false "Case-insensitive title substring"
// @Param genre query string false "Case-insensitive genre name"
// @Param page query int false "1-based page number"
// @Param pageSize query int false "Items per page"
// @Success 200 {object} APIResponse{result=PagedMoviesResponse}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	pageNumber, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	pageSize, err := queryInt(c, "pageSize")
	if err != nil {
		return err
	}

	filter := movie.Filter{
		Title: c.QueryParam("title"),
		Genre: c.QueryParam("genre"),
	}
	paged, err := s.MovieService.ListMovies(c.Request().Context(), filter, movie.Page{Number: pageNumber, Size: pageSize})
	if err != nil {
		return err
	}
	if paged.Page.Number > 1 && paged.Page.Number > paged.TotalPages() {
		return errInvalidPage
	}

	resp := PagedMoviesResponse{
		Results:    newMovieResponses(paged.Items),
		TotalPages: paged.TotalPages(),
		Total:      paged.Total,
		Page:       paged.Page.Number,
		PageSize:   paged.Page.Size,
	}
	if paged.HasNext() {
		next := pageURL(c, paged.Page.Number+1)
		resp.Next = &next
	}
	return writeSuccess(c, http.StatusOK, resp)
}

// handleGetMovie godoc
// @Summary Get Movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} APIResponse{result=MovieResponse}
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	id, err := pathID(c, movie.ErrInvalidID)
	if err != nil {
		return err
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, newMovieResponse(m))
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Description Create a movie; genres and actors are created when unknown
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movie body MovieRequest true "Movie"
// @Success 201 {object} APIResponse{result=MovieResponse}
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	var req MovieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := s.MovieService.CreateMovie(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}
	metrics.RecordMovieWrite("create")
	return writeSuccess(c, http.StatusCreated, newMovieResponse(m))
}

// handleUpdateMovie godoc
// @Summary Replace Movie
// @Description Overwrite every field of a movie, including its genres, actors and seed ratings
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Param movie body MovieRequest true "Movie"
// @Success 200 {object} APIResponse{result=MovieResponse}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	id, err := pathID(c, movie.ErrInvalidID)
	if err != nil {
		return err
	}
	var req MovieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := s.MovieService.UpdateMovie(c.Request().Context(), id, req.ToMovie())
	if err != nil {
		return err
	}
	metrics.RecordMovieWrite("update")
	return writeSuccess(c, http.StatusOK, newMovieResponse(m))
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Tags movies
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	id, err := pathID(c, movie.ErrInvalidID)
	if err != nil {
		return err
	}

	if err := s.MovieService.DeleteMovie(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.RecordMovieWrite("delete")
	return c.NoContent(http.StatusNoContent)
}

// handleListGenres godoc
// @Summary List Genres
// @Tags movies
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/genres [get]
func (s *Server) handleListGenres(c echo.Context) error {
	genres, err := s.MovieService.ListGenres(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, newGenreResponses(genres))
}

// handleListActors godoc
// @Summary List Actors
// @Tags movies
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/actors [get]
func (s *Server) handleListActors(c echo.Context) error {
	actors, err := s.MovieService.ListActors(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, newActorResponses(actors))
}

// pathID parses the :id path parameter, returning invalid when it is not a
// positive integer.
func pathID(c echo.Context, invalid error) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid
	}
	return id, nil
}

// queryInt returns 0 for an absent parameter.
func queryInt(c echo.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, movie.ErrInvalidQuery
	}
	return v, nil
}

func pageURL(c echo.Context, page int) string {
	u := *c.Request().URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	u.Scheme = c.Scheme()
	u.Host = c.Request().Host
	return u.String()
}
