package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smatching/middleware"
	"smatching/services/alert"
	"smatching/services/user"
	"smatching/utils"
)

// UserHandler serves account, session, alert-settings, and
// notification endpoints.
type UserHandler struct {
	Users  user.UserService
	Alerts alert.AlertService
}

func NewUserHandler(users user.UserService, alerts alert.AlertService) *UserHandler {
	return &UserHandler{Users: users, Alerts: alerts}
}

// SignUp registers a new account.
func (h *UserHandler) SignUp(c *gin.Context) {
	var input user.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Users.SignUp(input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// SignIn opens a session for existing credentials.
func (h *UserHandler) SignIn(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Users.SignIn(input.Email, input.Password)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SignOut revokes the current session.
func (h *UserHandler) SignOut(c *gin.Context) {
	if err := h.Users.SignOut(middleware.UserID(c)); err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

// GetProfile returns the authenticated user's account.
func (h *UserHandler) GetProfile(c *gin.Context) {
	usr, err := h.Users.GetByID(middleware.UserID(c))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// DeleteAccount removes the authenticated user's account.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.Users.Delete(middleware.UserID(c)); err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// UpdateFCMToken stores the device push token.
func (h *UserHandler) UpdateFCMToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Users.UpdateFCMToken(middleware.UserID(c), input.Token); err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// ListNotifications returns the notification tab contents and marks
// them read.
func (h *UserHandler) ListNotifications(c *gin.Context) {
	list, err := h.Users.Notifications(middleware.UserID(c))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// UncheckedCount returns the unread badge count.
func (h *UserHandler) UncheckedCount(c *gin.Context) {
	cnt, err := h.Users.UncheckedCount(middleware.UserID(c))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": cnt})
}

// GetAlertSettings returns the aggregate alert state.
func (h *UserHandler) GetAlertSettings(c *gin.Context) {
	settings, err := h.Alerts.GetSettings(middleware.UserID(c))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ToggleCondAlert flips the aggregate condition-alert state.
func (h *UserHandler) ToggleCondAlert(c *gin.Context) {
	result, err := h.Alerts.ToggleUserCondAlert(middleware.UserID(c))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ToggleTalkAlert flips the talk-alert flag.
func (h *UserHandler) ToggleTalkAlert(c *gin.Context) {
	on, err := h.Alerts.ToggleTalkAlert(middleware.UserID(c))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"talkAlert": on})
}

// UploadProfilePicture stores a new profile image from a multipart
// form.
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image file"})
		return
	}
	defer file.Close()

	url, err := h.Users.UpdateProfileImage(c.Request.Context(), middleware.UserID(c), file)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profileUrl": url})
}

// DeleteProfilePicture removes the profile image.
func (h *UserHandler) DeleteProfilePicture(c *gin.Context) {
	if err := h.Users.RemoveProfileImage(c.Request.Context(), middleware.UserID(c)); err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
