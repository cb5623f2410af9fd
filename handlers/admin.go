package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smatching/models"
	"smatching/services/notice"
	"smatching/utils"
)

// AdminHandler serves the publishing endpoints behind the admin token.
type AdminHandler struct {
	Admin notice.AdminNoticeService
	Scans notice.ScanService
}

func NewAdminHandler(admin notice.AdminNoticeService, scans notice.ScanService) *AdminHandler {
	return &AdminHandler{Admin: admin, Scans: scans}
}

// AddNotice publishes a notice and triggers the new-notice fan-out.
func (h *AdminHandler) AddNotice(c *gin.Context) {
	var input models.NoticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	n, err := h.Admin.AddNotice(c.Request.Context(), input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// InvalidateNotice takes a notice out of circulation.
func (h *AdminHandler) InvalidateNotice(c *gin.Context) {
	if err := h.Admin.InvalidateNotice(c.Param("noticeId")); err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}

// ListNotices pages through valid notices with full fields.
func (h *AdminHandler) ListNotices(c *gin.Context) {
	offset, limit := pagination(c)
	list, err := h.Admin.ListNotices(offset, limit)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": list})
}

// GetNotice loads one notice regardless of validity.
func (h *AdminHandler) GetNotice(c *gin.Context) {
	n, err := h.Admin.GetNotice(c.Param("noticeId"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// RunScans triggers the daily sweeps on demand.
func (h *AdminHandler) RunScans(c *gin.Context) {
	now := time.Now().UTC()

	expired, err := h.Scans.ScanExpiredNotices(c.Request.Context(), now)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	alerts, err := h.Scans.ScanThreeDaysLeft(c.Request.Context(), now)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": expired, "alerts": alerts})
}
