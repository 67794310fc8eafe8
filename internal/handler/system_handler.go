package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/middleware"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/service"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/response"
)

type SystemHandler struct {
	systemService service.SystemService
	reviewService service.ReviewService
}

func NewSystemHandler(systemService service.SystemService, reviewService service.ReviewService) *SystemHandler {
	return &SystemHandler{systemService: systemService, reviewService: reviewService}
}

func (h *SystemHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleReviewer, model.RoleAuthor)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	systems := router.Group("/api/systems")
	{
		systems.GET("", anyRole, h.GetSystems)
		systems.POST("", adminOnly, h.CreateSystem)
		systems.GET("/:code", anyRole, h.GetSystemByCode)
		systems.GET("/:code/reviews", anyRole, h.GetSystemReviews)
	}
}

// GetSystems returns the system registry
func (h *SystemHandler) GetSystems(c *gin.Context) {
	systems, err := h.systemService.ListSystems(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, systems))
}

// CreateSystem registers a new system
func (h *SystemHandler) CreateSystem(c *gin.Context) {
	var req service.CreateSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	system, err := h.systemService.CreateSystem(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, system))
}

// GetSystemByCode returns one system registry entry
func (h *SystemHandler) GetSystemByCode(c *gin.Context) {
	system, err := h.systemService.GetSystem(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, system))
}

// GetSystemReviews returns every review authored against a system
func (h *SystemHandler) GetSystemReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListSystemReviews(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, reviews))
}
