package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/middleware"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/service"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/response"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleReviewer, model.RoleAuthor)
	authorOnly := middleware.RequireRole(model.RoleAdmin, model.RoleAuthor)

	reviews := router.Group("/api/reviews")
	{
		reviews.GET("", anyRole, h.GetReviews)
		reviews.POST("", authorOnly, h.CreateReview)
		reviews.GET("/:id", anyRole, h.GetReviewByID)
		reviews.PUT("/:id", authorOnly, h.UpdateReview)
		reviews.DELETE("/:id", authorOnly, h.DeleteReview)
		reviews.GET("/:id/precheck", anyRole, h.GetPrecheck)
		reviews.POST("/:id/transition", anyRole, h.TransitionState)
	}
}

// GetReviews returns all solution reviews
// @Summary List all solution reviews
// @Tags reviews
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/reviews [get]
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListReviews(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, reviews))
}

// CreateReview creates a new review in DRAFT state
// @Summary Create a solution review
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body service.CreateReviewRequest true "Review payload"
// @Success 201 {object} response.Response
// @Router /api/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req service.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, username := actorFrom(c)
	review, err := h.reviewService.CreateReview(c.Request.Context(), req, service.Actor{UserID: userID, Username: username})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, review))
}

// GetReviewByID returns a single review with all sections hydrated
// @Summary Get a solution review
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Response
// @Router /api/reviews/{id} [get]
func (h *ReviewHandler) GetReviewByID(c *gin.Context) {
	review, err := h.reviewService.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, review))
}

// UpdateReview applies a partial update to a review's sections
// @Summary Update a solution review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body service.UpdateReviewRequest true "Partial update"
// @Success 200 {object} response.Response
// @Router /api/reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req service.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, username := actorFrom(c)
	review, err := h.reviewService.UpdateReview(c.Request.Context(), c.Param("id"), req, service.Actor{UserID: userID, Username: username})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, review))
}

// DeleteReview soft-deletes a review
// @Summary Delete a solution review
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Response
// @Router /api/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, username := actorFrom(c)
	if err := h.reviewService.DeleteReview(c.Request.Context(), c.Param("id"), service.Actor{UserID: userID, Username: username}); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// GetPrecheck returns the submit checklist for a review
// @Summary Submission pre-check
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Response
// @Router /api/reviews/{id}/precheck [get]
func (h *ReviewHandler) GetPrecheck(c *gin.Context) {
	precheck, err := h.reviewService.Precheck(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, precheck))
}

// TransitionState enacts a named lifecycle transition on a review
// @Summary Transition document state
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body service.TransitionRequest true "Transition"
// @Success 200 {object} response.Response
// @Router /api/reviews/{id}/transition [post]
func (h *ReviewHandler) TransitionState(c *gin.Context) {
	var req service.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, username := actorFrom(c)
	review, err := h.reviewService.Transition(c.Request.Context(), c.Param("id"), req, service.Actor{UserID: userID, Username: username})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, review))
}
