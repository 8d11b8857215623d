package httpserver

import (
	"net/http"

	"moviecatalog/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPublicRatingRoutes(g *echo.Group) {
	g.GET("/movies/:id/ratings", s.handleListMovieRatings)
}

func (s *Server) RegisterPrivateRatingRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.PUT("/movies/:id/rating", s.handleRateMovie, m...)
	g.DELETE("/movies/:id/rating", s.handleRemoveRating, m...)
}

// handleListMovieRatings godoc
// @Summary List Movie Ratings
// @Tags ratings
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id}/ratings [get]
func (s *Server) handleListMovieRatings(c echo.Context) error {
	id, err := pathID(c, movie.ErrInvalidID)
	if err != nil {
		return err
	}

	ratings, err := s.RatingService.ListMovieRatings(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, newRatingResponses(ratings))
}

// handleRateMovie godoc
// @Summary Rate Movie
// @Description Store the caller's score for a movie, replacing an earlier one
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Param rating body RatingRequest true "Score between 0 and 10"
// @Success 200 {object} APIResponse{result=RatingResponse}
// @Success 201 {object} APIResponse{result=RatingResponse}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id}/rating [put]
func (s *Server) handleRateMovie(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, movie.ErrInvalidID)
	if err != nil {
		return err
	}
	var req RatingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, created, err := s.RatingService.Rate(c.Request().Context(), claims.UserID, id, *req.Value)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return writeSuccess(c, status, newRatingResponse(r))
}

// handleRemoveRating godoc
// @Summary Remove Rating
// @Tags ratings
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id}/rating [delete]
func (s *Server) handleRemoveRating(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, movie.ErrInvalidID)
	if err != nil {
		return err
	}

	if err := s.RatingService.RemoveRating(c.Request().Context(), claims.UserID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
