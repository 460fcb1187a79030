package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "moviereview/internal/errors"
	"moviereview/internal/service"
)

// MovieHandler handles movie search and persistence.
type MovieHandler struct {
	movieService service.MovieService
	log          *zap.Logger
}

// NewMovieHandler creates a new movie handler.
func NewMovieHandler(movieService service.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{movieService: movieService, log: log}
}

// SaveMovieRequest is a movie picked from search results.
type SaveMovieRequest struct {
	ID          *int64  `json:"id" validate:"required"`
	Title       *string `json:"title" validate:"required"`
	ReleaseDate *string `json:"release_date" validate:"omitempty,releasedate"`
	PosterPath  *string `json:"poster_path"`
	Overview    *string `json:"overview"`
}

// Search godoc
// @Summary Search movies in TMDb
// @Tags movies
// @Produce json
// @Param query query string true "Search words"
// @Success 200 {array} model.MovieSearchResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /movies/search [get]
func (h *MovieHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return fail(c, h.log, apperrors.NewValidationError("query", apperrors.MsgRequired("query")), "")
	}

	results, err := h.movieService.Search(c.Request().Context(), query)
	if err != nil {
		return fail(c, h.log, err, apperrors.MsgMovieSearchFailed)
	}
	return c.JSON(http.StatusOK, results)
}

// Save godoc
// @Summary Save a movie locally
// @Description Inserts the movie or refreshes the stored copy with the same id.
// @Tags movies
// @Accept json
// @Produce json
// @Param request body SaveMovieRequest true "Movie"
// @Success 201 {object} model.Movie
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /movies [post]
func (h *MovieHandler) Save(c echo.Context) error {
	var req SaveMovieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, h.log, err, "")
	}

	movie, err := h.movieService.Save(c.Request().Context(), service.SaveMovieInput{
		ID:          *req.ID,
		Title:       *req.Title,
		ReleaseDate: req.ReleaseDate,
		PosterPath:  req.PosterPath,
		Overview:    req.Overview,
	})
	if err != nil {
		return fail(c, h.log, err, apperrors.MsgMovieSaveFailed)
	}
	return c.JSON(http.StatusCreated, movie)
}

// Get godoc
// @Summary Get a stored movie with review statistics
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} service.MovieDetail
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	detail, err := h.movieService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, h.log, err, "")
	}
	return c.JSON(http.StatusOK, detail)
}
