package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/middleware"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/service"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/response"
)

type LookupHandler struct {
	lookupService service.LookupService
}

func NewLookupHandler(lookupService service.LookupService) *LookupHandler {
	return &LookupHandler{lookupService: lookupService}
}

func (h *LookupHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleReviewer, model.RoleAuthor)

	lookups := router.Group("/api/lookups")
	{
		lookups.GET("/business-capabilities", anyRole, h.GetBusinessCapabilities)
		lookups.GET("/tech-components", anyRole, h.GetTechComponents)
	}
}

// GetBusinessCapabilities returns the L1/L2/L3 capability taxonomy
func (h *LookupHandler) GetBusinessCapabilities(c *gin.Context) {
	entries, err := h.lookupService.CapabilityTaxonomy(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// GetTechComponents returns the product/version tech catalog
func (h *LookupHandler) GetTechComponents(c *gin.Context) {
	entries, err := h.lookupService.TechCatalog(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}
