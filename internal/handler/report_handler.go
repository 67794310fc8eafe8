package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/middleware"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/service"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	{
		reports.GET("/reviews", middleware.RequireRole(model.RoleAdmin, model.RoleReviewer), h.ExportReviews)
	}
}

// ExportReviews streams the review register as an xlsx workbook
func (h *ReportHandler) ExportReviews(c *gin.Context) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=solution-reviews.xlsx")
	if err := h.reportService.ExportReviewRegister(c.Request.Context(), c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}
