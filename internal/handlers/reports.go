package handlers

import (
	"net/http"

	"github.com/alimgiray/secmetrics/internal/services"
	"github.com/alimgiray/secmetrics/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportsHandler struct {
	branchProtectionService *services.BranchProtectionService
	twoFactorService        *services.TwoFactorService
	exportService           *services.ExportService
}

func NewReportsHandler(branchProtectionService *services.BranchProtectionService, twoFactorService *services.TwoFactorService, exportService *services.ExportService) *ReportsHandler {
	return &ReportsHandler{
		branchProtectionService: branchProtectionService,
		twoFactorService:        twoFactorService,
		exportService:           exportService,
	}
}

// BranchProtection serves the default-branch protection report as JSON, or as
// an XLSX download with ?format=xlsx
func (h *ReportsHandler) BranchProtection(c *gin.Context) {
	statuses, err := h.branchProtectionService.Report()
	if err != nil {
		logger.WithError(err).Error("Failed to build branch protection report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	if c.Query("format") == "xlsx" {
		workbook, err := h.exportService.BranchProtectionWorkbook(statuses)
		if err != nil {
			logger.WithError(err).Error("Failed to export branch protection report")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export report"})
			return
		}
		writeWorkbook(c, workbook, "branch_protection.xlsx")
		return
	}

	c.JSON(http.StatusOK, statuses)
}

// OrganizationTwoFactor serves the organization 2FA report as JSON, or as an
// XLSX download with ?format=xlsx
func (h *ReportsHandler) OrganizationTwoFactor(c *gin.Context) {
	statuses, err := h.twoFactorService.Report()
	if err != nil {
		logger.WithError(err).Error("Failed to build organization 2FA report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	if c.Query("format") == "xlsx" {
		workbook, err := h.exportService.TwoFactorWorkbook(statuses)
		if err != nil {
			logger.WithError(err).Error("Failed to export organization 2FA report")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export report"})
			return
		}
		writeWorkbook(c, workbook, "organization_2fa.xlsx")
		return
	}

	c.JSON(http.StatusOK, statuses)
}

func writeWorkbook(c *gin.Context, workbook *excelize.File, filename string) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := workbook.Write(c.Writer); err != nil {
		logger.WithError(err).Error("Failed to write workbook response")
	}
}
