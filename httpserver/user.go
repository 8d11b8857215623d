package httpserver

import (
	"net/http"

	"moviecatalog/user"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterUserRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/users", s.handleListUsers, m...)
	g.GET("/users/:id", s.handleGetUser, m...)
}

func (s *Server) RegisterMeRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/me", s.handleMe, m...)
	g.GET("/me/favorites", s.handleMyFavorites, m...)
	g.GET("/me/ratings", s.handleMyRatings, m...)
}

// handleListUsers godoc
// @Summary List Users
// @Description Get all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Router /api/users [get]
func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.UserService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, newUserResponses(users))
}

// handleGetUser godoc
// @Summary Get User
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} APIResponse{result=UserResponse}
// @Failure 404 {object} APIResponse
// @Router /api/users/{id} [get]
func (s *Server) handleGetUser(c echo.Context) error {
	id, err := pathID(c, user.ErrInvalidUserID)
	if err != nil {
		return err
	}

	u, err := s.UserService.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, newUserResponse(u))
}

// handleMe godoc
// @Summary Current User
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{result=UserResponse}
// @Failure 401 {object} APIResponse
// @Router /api/me [get]
func (s *Server) handleMe(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	u, err := s.UserService.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, newUserResponse(u))
}

// handleMyFavorites godoc
// @Summary My Favorite Movies
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Router /api/me/favorites [get]
func (s *Server) handleMyFavorites(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	movies, err := s.FavoriteService.ListFavorites(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, newMovieResponses(movies))
}

// handleMyRatings godoc
// @Summary My Ratings
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Router /api/me/ratings [get]
func (s *Server) handleMyRatings(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	ratings, err := s.RatingService.ListUserRatings(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, newRatingResponses(ratings))
}
