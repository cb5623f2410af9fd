package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smatching/middleware"
	"smatching/services/notice"
	"smatching/utils"
)

// NoticeHandler serves the user-facing notice endpoints.
type NoticeHandler struct {
	Notices notice.NoticeService
}

func NewNoticeHandler(notices notice.NoticeService) *NoticeHandler {
	return &NoticeHandler{Notices: notices}
}

// List pages through every valid notice.
func (h *NoticeHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	list, err := h.Notices.ListAll(middleware.UserID(c), offset, limit)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": list})
}

// Count returns the number of valid notices.
func (h *NoticeHandler) Count(c *gin.Context) {
	cnt, err := h.Notices.CountAll()
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": cnt})
}

// ListScraped pages through the user's bookmarked notices.
func (h *NoticeHandler) ListScraped(c *gin.Context) {
	offset, limit := pagination(c)
	list, err := h.Notices.ListScraped(middleware.UserID(c), offset, limit)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": list})
}

// Detail returns one notice's full page.
func (h *NoticeHandler) Detail(c *gin.Context) {
	detail, err := h.Notices.GetDetail(middleware.UserID(c), c.Param("noticeId"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ScrapState reports whether the user has bookmarked the notice.
func (h *NoticeHandler) ScrapState(c *gin.Context) {
	scraped, err := h.Notices.IsScraped(middleware.UserID(c), c.Param("noticeId"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scraped": scraped})
}

// ToggleScrap flips the user's bookmark on a notice.
func (h *NoticeHandler) ToggleScrap(c *gin.Context) {
	scraped, err := h.Notices.ToggleScrap(middleware.UserID(c), c.Param("noticeId"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scraped": scraped})
}
