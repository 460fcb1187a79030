package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"moviereview/internal/auth"
	"moviereview/internal/service"
)

// ReviewHandler handles review creation and listing.
type ReviewHandler struct {
	reviewService service.ReviewService
	log           *zap.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, log: log}
}

// CreateReviewRequest represents a review submission. At least one comment is required.
type CreateReviewRequest struct {
	MovieID        string   `json:"movieId" validate:"required"`
	Rating         *float64 `json:"rating" validate:"required,wholenumber,min=1,max=5"`
	CommentGeneral string   `json:"comment_general" validate:"required_without=CommentSpoiler,max=1000"`
	CommentSpoiler string   `json:"comment_spoiler" validate:"max=1000"`
}

// Create godoc
// @Summary Post a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReviewRequest true "Review"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	identity, err := auth.IdentityFrom(c)
	if err != nil {
		return fail(c, h.log, err, "")
	}

	var req CreateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, h.log, err, "")
	}

	review, err := h.reviewService.Create(c.Request().Context(), identity, service.CreateReviewInput{
		MovieID:        req.MovieID,
		Rating:         int(*req.Rating),
		CommentGeneral: req.CommentGeneral,
		CommentSpoiler: req.CommentSpoiler,
	})
	if err != nil {
		return fail(c, h.log, err, "")
	}
	return c.JSON(http.StatusCreated, review)
}

// List godoc
// @Summary List reviews
// @Description Unknown sortBy values and non-numeric ratings are ignored.
// @Tags reviews
// @Produce json
// @Param sortBy query string false "rating or created_at" Enums(rating, created_at)
// @Param order query string false "asc or desc (default desc)" Enums(asc, desc)
// @Param rating query int false "Only reviews with this rating"
// @Success 200 {array} model.Review
// @Failure 500 {object} errors.ErrorResponse
// @Router /reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	q := service.BuildReviewQuery(c.QueryParam("sortBy"), c.QueryParam("order"), c.QueryParam("rating"))

	reviews, err := h.reviewService.List(c.Request().Context(), q)
	if err != nil {
		return fail(c, h.log, err, "")
	}
	return c.JSON(http.StatusOK, reviews)
}

// Latest godoc
// @Summary Latest reviews
// @Tags reviews
// @Produce json
// @Success 200 {array} model.Review
// @Failure 500 {object} errors.ErrorResponse
// @Router /reviews/latest [get]
func (h *ReviewHandler) Latest(c echo.Context) error {
	reviews, err := h.reviewService.Latest(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err, "")
	}
	return c.JSON(http.StatusOK, reviews)
}
