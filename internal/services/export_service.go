package services

import (
	"fmt"

	"github.com/alimgiray/secmetrics/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportService renders report result sets as XLSX workbooks
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// BranchProtectionWorkbook renders the branch-protection report as a
// single-sheet workbook
func (s *ExportService) BranchProtectionWorkbook(statuses []*models.BranchProtectionStatus) (*excelize.File, error) {
	sheet := "Branch Protection"
	file, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}

	headers := []interface{}{"Name", "Protected", "URL", "Org", "Repo", "Branch", "Date"}
	if err := writeRow(file, sheet, 1, headers); err != nil {
		return nil, err
	}

	for i, status := range statuses {
		row := []interface{}{
			status.Name, status.Protected, status.URL,
			status.Org, status.Repo, status.Branch,
			status.Date.Format("2006-01-02"),
		}
		if err := writeRow(file, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return file, nil
}

// TwoFactorWorkbook renders the organization 2FA report as a single-sheet
// workbook
func (s *ExportService) TwoFactorWorkbook(statuses []*models.OrgTwoFactorStatus) (*excelize.File, error) {
	sheet := "Organization 2FA"
	file, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}

	headers := []interface{}{"Date", "Organization", "2FA"}
	if err := writeRow(file, sheet, 1, headers); err != nil {
		return nil, err
	}

	for i, status := range statuses {
		row := []interface{}{
			status.Date.Format("2006-01-02"),
			status.Organization,
			string(status.TwoFactor),
		}
		if err := writeRow(file, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return file, nil
}

// newWorkbook creates a workbook whose default sheet is renamed to name
func newWorkbook(name string) (*excelize.File, error) {
	file := excelize.NewFile()
	if err := file.SetSheetName("Sheet1", name); err != nil {
		return nil, fmt.Errorf("failed to name sheet %q: %w", name, err)
	}
	return file, nil
}

// writeRow writes values into row number row (1-based), starting at column A
func writeRow(file *excelize.File, sheet string, row int, values []interface{}) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}
