package service

import (
	"fmt"
	"strings"
	"time"

	"hotel-management-backend/internal/models"
	"hotel-management-backend/internal/repository"
	"hotel-management-backend/pkg/logger"
)

// ReportService stores admin report entries and can generate an occupancy
// snapshot from the live room statistics.
type ReportService struct {
	reportRepo *repository.ReportRepository
	roomRepo   *repository.RoomRepository
	auditRepo  *repository.AuditRepository
}

func NewReportService(
	reportRepo *repository.ReportRepository,
	roomRepo *repository.RoomRepository,
	auditRepo *repository.AuditRepository,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		roomRepo:   roomRepo,
		auditRepo:  auditRepo,
	}
}

// GetAll retrieves all reports, newest first.
func (s *ReportService) GetAll() ([]models.Report, error) {
	return s.reportRepo.GetAll()
}

// Get retrieves a single report.
func (s *ReportService) Get(id uint) (*models.Report, error) {
	return s.reportRepo.GetByID(id)
}

// Create stores a manually written report entry.
func (s *ReportService) Create(report *models.Report, userID uint) (*models.Report, error) {
	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.audit(&userID, "report_create", fmt.Sprintf("Created report %s (ID: %d)", report.Title, report.ID))
	return report, nil
}

// GenerateOccupancy computes the current room statistics and saves them as
// a dated report entry.
func (s *ReportService) GenerateOccupancy(hotelID *uint, generatedBy string, userID uint) (*models.Report, error) {
	stats, err := s.roomRepo.Statistics(hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	scope := "all hotels"
	if hotelID != nil {
		scope = fmt.Sprintf("hotel %d", *hotelID)
	}

	occupancy := 0.0
	if stats.Total > 0 {
		occupancy = float64(stats.Booked) / float64(stats.Total) * 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total rooms: %d. ", stats.Total)
	fmt.Fprintf(&b, "Available: %d, booked: %d, maintenance: %d. ", stats.Available, stats.Booked, stats.Maintenance)
	fmt.Fprintf(&b, "Average price: %.2f.", stats.AvgPrice)

	report := &models.Report{
		Title:       fmt.Sprintf("Occupancy report for %s (%s)", scope, time.Now().UTC().Format("2006-01-02")),
		Description: b.String(),
		Value:       fmt.Sprintf("%.1f%%", occupancy),
		GeneratedBy: generatedBy,
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.audit(&userID, "report_generate", fmt.Sprintf("Generated occupancy report for %s", scope))
	return report, nil
}

// Delete removes a report.
func (s *ReportService) Delete(id uint, userID uint) error {
	if err := s.reportRepo.Delete(id); err != nil {
		return err
	}

	s.audit(&userID, "report_delete", fmt.Sprintf("Deleted report %d", id))
	return nil
}

func (s *ReportService) audit(userID *uint, action, details string) {
	if err := s.auditRepo.CreateAuditLog(userID, action, details); err != nil {
		logger.Get().Warnf("Failed to write audit log (%s): %v", action, err)
	}
}
