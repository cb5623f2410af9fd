package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smatching/middleware"
	"smatching/models"
	"smatching/services/alert"
	"smatching/services/condition"
	"smatching/services/matching"
	"smatching/services/notice"
	"smatching/utils"
)

// ConditionHandler serves the saved-condition endpoints.
type ConditionHandler struct {
	Conditions condition.ConditionService
	Alerts     alert.AlertService
	Matcher    matching.MatchService
	NoticeSvc  notice.NoticeService
}

func NewConditionHandler(
	conds condition.ConditionService,
	alerts alert.AlertService,
	matcher matching.MatchService,
	notices notice.NoticeService,
) *ConditionHandler {
	return &ConditionHandler{Conditions: conds, Alerts: alerts, Matcher: matcher, NoticeSvc: notices}
}

// Create stores a new condition for the authenticated user.
func (h *ConditionHandler) Create(c *gin.Context) {
	var input models.ConditionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	cond, err := h.Conditions.CreateCondition(middleware.UserID(c), input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cond)
}

// Get returns one condition in decoded-option form.
func (h *ConditionHandler) Get(c *gin.Context) {
	detail, err := h.Conditions.GetCondition(middleware.UserID(c), c.Param("conditionId"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Update replaces the name and options of a condition.
func (h *ConditionHandler) Update(c *gin.Context) {
	var input models.ConditionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Conditions.UpdateCondition(middleware.UserID(c), c.Param("conditionId"), input); err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// Delete removes a condition.
func (h *ConditionHandler) Delete(c *gin.Context) {
	if err := h.Conditions.DeleteCondition(middleware.UserID(c), c.Param("conditionId")); err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListMine returns the conditions overview: nickname plus per-condition
// summaries with live match counts.
func (h *ConditionHandler) ListMine(c *gin.Context) {
	overview, err := h.Conditions.GetUserConditions(middleware.UserID(c))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ToggleAlert flips the alert flag on one condition.
func (h *ConditionHandler) ToggleAlert(c *gin.Context) {
	on, err := h.Alerts.ToggleConditionAlert(middleware.UserID(c), c.Param("conditionId"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alertOn": on})
}

// NoticeCount returns how many notices currently match the condition.
func (h *ConditionHandler) NoticeCount(c *gin.Context) {
	cnt, err := h.Matcher.CountForCondition(c.Param("conditionId"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": cnt})
}

// Notices pages through the notices matching the condition.
func (h *ConditionHandler) Notices(c *gin.Context) {
	offset, limit := pagination(c)
	list, err := h.NoticeSvc.ListForCondition(middleware.UserID(c), c.Param("conditionId"), offset, limit)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": list})
}
