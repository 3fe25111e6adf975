package handler

import (
	"hotel-management-backend/internal/repository"
	"hotel-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const defaultAuditLimit = 100

type AuditHandler struct {
	auditRepo *repository.AuditRepository
}

func NewAuditHandler(auditRepo *repository.AuditRepository) *AuditHandler {
	return &AuditHandler{
		auditRepo: auditRepo,
	}
}

// ListAuditLogs returns a page of audit entries, newest first (admin only)
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	page, limit := pageParams(c)
	p := repository.NormalizePage(page, limit, defaultAuditLimit)

	logs, total, err := h.auditRepo.List(p)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, gin.H{"logs": logs}, utils.NewPagination(p.Page, p.Limit, len(logs), total))
}
