package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/repository"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

// ReportService exports the review register as an xlsx workbook.
type ReportService interface {
	ExportReviewRegister(ctx context.Context, w io.Writer) error
}

type reportService struct {
	reviews repository.ReviewRepository
}

func NewReportService(reviews repository.ReviewRepository) ReportService {
	return &reportService{reviews: reviews}
}

func (s *reportService) ExportReviewRegister(ctx context.Context, w io.Writer) error {
	reviews, err := s.reviews.FindAll(ctx)
	if err != nil {
		return apperror.Wrap(apperror.KindServer, err, "failed to load reviews for export")
	}

	f := excelize.NewFile()
	defer f.Close()
	sheetName := "Reviews"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return apperror.Wrap(apperror.KindServer, err, "failed to create sheet")
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// Add headers
	headings := []string{
		"SystemCode", "SolutionName", "ReviewType", "BusinessUnit",
		"State", "Components", "Integrations", "DataAssets",
		"LastModifiedBy", "UpdatedAt",
	}
	col := 'A'
	for _, h := range headings {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}

	// Add data
	for i, r := range reviews {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheetName, "A"+row, r.SystemCode)
		f.SetCellValue(sheetName, "B"+row, r.Overview.SolutionName)
		f.SetCellValue(sheetName, "C"+row, r.Overview.ReviewType)
		f.SetCellValue(sheetName, "D"+row, r.Overview.BusinessUnit)
		f.SetCellValue(sheetName, "E"+row, r.DocumentState)
		f.SetCellValue(sheetName, "F"+row, r.SectionLen(model.SectionSystemComponents))
		f.SetCellValue(sheetName, "G"+row, r.SectionLen(model.SectionIntegrationFlows))
		f.SetCellValue(sheetName, "H"+row, r.SectionLen(model.SectionDataAssets))
		f.SetCellValue(sheetName, "I"+row, r.LastModifiedBy)
		f.SetCellValue(sheetName, "J"+row, r.UpdatedAt.Format(time.RFC3339))
	}

	if err := f.Write(w); err != nil {
		return apperror.Wrap(apperror.KindServer, err, "failed to write workbook")
	}
	return nil
}
