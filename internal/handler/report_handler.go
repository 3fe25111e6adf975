package handler

import (
	"net/http"

	"hotel-management-backend/internal/models"
	"hotel-management-backend/internal/service"
	"hotel-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ListReports returns all saved reports.
func (h *ReportHandler) ListReports(c *gin.Context) {
	reports, err := h.reportService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reports": reports,
		"count":   len(reports),
	})
}

// GetReport retrieves a single report.
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.reportService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, report)
}

// CreateReport stores a manually written report entry (admin only)
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var report models.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.reportService.Create(&report, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, created)
}

// GenerateOccupancyReport computes live room statistics and saves them as
// a dated report (admin only). Query: hotelId
func (h *ReportHandler) GenerateOccupancyReport(c *gin.Context) {
	hotelID, err := uintQuery(c, "hotelId")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hotelId")
		return
	}

	generatedBy := ""
	if username, exists := c.Get("username"); exists {
		if s, ok := username.(string); ok {
			generatedBy = s
		}
	}

	report, err := h.reportService.GenerateOccupancy(hotelID, generatedBy, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, report)
}

// DeleteReport removes a report (admin only)
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reportService.Delete(id, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Report deleted successfully")
}
