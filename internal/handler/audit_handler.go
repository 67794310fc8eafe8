package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/middleware"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/service"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/pagination"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/response"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	audits := router.Group("/api/audits")
	{
		audits.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleReviewer), h.GetAuditEntries)
	}
}

// GetAuditEntries returns paginated audit log entries, newest first
func (h *AuditHandler) GetAuditEntries(c *gin.Context) {
	params := pagination.Parse(c)
	entries, total, err := h.auditService.ListEntries(c.Request.Context(), service.AuditFilter{
		Action: c.Query("action"),
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"entries": entries,
		"total":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	}))
}
