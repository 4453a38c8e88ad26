package service

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/prakasautama/procost/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService 成本汇总导出（xlsx / PDF）
type ExportService struct {
	bomRepo     *repository.BomCostRepository
	projectRepo *repository.ProjectRepository
}

func NewExportService(bomRepo *repository.BomCostRepository, projectRepo *repository.ProjectRepository) *ExportService {
	return &ExportService{bomRepo: bomRepo, projectRepo: projectRepo}
}

var bomCostExportHeaders = []string{
	"Component", "Candidate Supplier", "Price", "Currency", "Term",
	"Landed Cost", "TPL", "BP Rate", "Landed IDR Price", "Cost Bearing", "Tooling Cost",
}

// ExportXLSX 项目成本汇总导出为xlsx
func (s *ExportService) ExportXLSX(ctx context.Context, projectID string) (*excelize.File, string, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, "", fmt.Errorf("project not found: %w", err)
	}
	items, err := s.bomRepo.FindAll(ctx, projectID)
	if err != nil {
		return nil, "", fmt.Errorf("list bom costs: %w", err)
	}

	f := excelize.NewFile()
	sheet := "BOM Cost"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range bomCostExportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		cell := colName + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	var totalBearing, totalTooling float64
	for rowIdx, item := range items {
		r := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), item.Component)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), item.CandidateSupplier)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), item.Price)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), item.Currency)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), item.Term)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), item.LandedCost)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", r), item.TPL)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", r), item.Bp2026)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", r), item.LandedIdrPrice)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", r), item.CostBearing)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", r), item.ToolingCost)
		totalBearing += item.CostBearing
		totalTooling += item.ToolingCost
	}

	summaryRow := len(items) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("J%d", summaryRow), totalBearing)
	f.SetCellValue(sheet, fmt.Sprintf("K%d", summaryRow), totalTooling)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("K%d", summaryRow), summaryStyle)

	colWidths := []float64{20, 20, 12, 10, 10, 12, 10, 12, 16, 16, 14}
	for i, w := range colWidths {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, colName, colName, w)
	}

	filename := fmt.Sprintf("BOMCost_%s.xlsx", project.Name)
	return f, filename, nil
}

// ExportPDF 项目成本汇总导出为PDF
func (s *ExportService) ExportPDF(ctx context.Context, projectID string) ([]byte, string, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, "", fmt.Errorf("project not found: %w", err)
	}
	items, err := s.bomRepo.FindAll(ctx, projectID)
	if err != nil {
		return nil, "", fmt.Errorf("list bom costs: %w", err)
	}

	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("BOM Cost Summary - %s", project.Name), props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02")), props.Text{
					Size:  8,
					Align: align.Right,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
	)

	headerText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	m.AddRows(
		row.New(8).Add(
			col.New(3).Add(text.New("Component", headerText)),
			col.New(3).Add(text.New("Candidate Supplier", headerText)),
			col.New(2).Add(text.New("Landed IDR Price", headerText)),
			col.New(2).Add(text.New("Cost Bearing", headerText)),
			col.New(2).Add(text.New("Tooling Cost", headerText)),
		),
	)

	cellText := props.Text{Size: 8, Align: align.Left}
	var totalBearing float64
	for _, item := range items {
		m.AddRows(
			row.New(6).Add(
				col.New(3).Add(text.New(item.Component, cellText)),
				col.New(3).Add(text.New(item.CandidateSupplier, cellText)),
				col.New(2).Add(text.New(fmt.Sprintf("%.2f", item.LandedIdrPrice), cellText)),
				col.New(2).Add(text.New(fmt.Sprintf("%.2f", item.CostBearing), cellText)),
				col.New(2).Add(text.New(fmt.Sprintf("%.2f", item.ToolingCost), cellText)),
			),
		)
		totalBearing += item.CostBearing
	}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(text.New("Total Cost Bearing", headerText)),
			col.New(4).Add(text.New(fmt.Sprintf("%.2f", totalBearing), headerText)),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, "", fmt.Errorf("generate pdf: %w", err)
	}

	filename := fmt.Sprintf("BOMCost_%s.pdf", project.Name)
	return doc.GetBytes(), filename, nil
}
