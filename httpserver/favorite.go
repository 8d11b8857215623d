package httpserver

import (
	"net/http"

	"moviecatalog/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterFavoriteRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/movies/:id/favorite", s.handleAddFavorite, m...)
	g.DELETE("/movies/:id/favorite", s.handleRemoveFavorite, m...)
}

// handleAddFavorite godoc
// @Summary Favorite Movie
// @Tags favorites
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id}/favorite [post]
func (s *Server) handleAddFavorite(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, movie.ErrInvalidID)
	if err != nil {
		return err
	}

	if err := s.FavoriteService.AddFavorite(c.Request().Context(), claims.UserID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// handleRemoveFavorite godoc
// @Summary Unfavorite Movie
// @Tags favorites
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 204
// @Router /api/movies/{id}/favorite [delete]
func (s *Server) handleRemoveFavorite(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, movie.ErrInvalidID)
	if err != nil {
		return err
	}

	if err := s.FavoriteService.RemoveFavorite(c.Request().Context(), claims.UserID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
