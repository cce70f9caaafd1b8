package menu

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// OwnerGuard checks that the calling user owns the hall before a
// staff operation touches its menu. The hall service provides it.
type OwnerGuard func(c *gin.Context, hallID int, userID string) error

type Handler struct {
	service *Service
	guard   OwnerGuard
}

func NewHandler(service *Service, guard OwnerGuard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) hallID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("hall_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hall id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) authorize(c *gin.Context, hallID int) bool {
	if h.guard == nil {
		return true
	}
	if err := h.guard(c, hallID, c.GetString("userID")); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not own this hall"})
		return false
	}
	return true
}

// Upload accepts a multipart menu file for a hall and queues it for
// processing.
func (h *Handler) Upload(c *gin.Context) {
	hallID, err := strconv.Atoi(c.PostForm("hall_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hall_id is required"})
		return
	}
	if !h.authorize(c, hallID) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read file"})
		return
	}
	defer file.Close()

	uploadID, status, err := h.service.UploadMenu(c.Request.Context(), hallID, fileHeader.Filename, file)
	if errors.Is(err, ErrMenuLocked) {
		c.JSON(http.StatusConflict, gin.H{"error": "menu already approved and locked"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"upload_id": uploadID,
		"status":    status,
	})
}

func (h *Handler) Status(c *gin.Context) {
	hallID, ok := h.hallID(c)
	if !ok {
		return
	}

	st, err := h.service.GetStatus(c.Request.Context(), hallID)
	if errors.Is(err, ErrNoUpload) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no upload for this hall"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) Retry(c *gin.Context) {
	hallID, ok := h.hallID(c)
	if !ok {
		return
	}
	if !h.authorize(c, hallID) {
		return
	}

	if err := h.service.Retry(c.Request.Context(), hallID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": StatusUploaded})
}

// Week returns the parsed weekly menu in the day-indexed shape.
func (h *Handler) Week(c *gin.Context) {
	hallID, ok := h.hallID(c)
	if !ok {
		return
	}

	w, err := h.service.GetWeekly(c.Request.Context(), hallID)
	if errors.Is(err, ErrNotParsed) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no parsed menu for this hall"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, w)
}

// UpdateWeek replaces the stored menu with a staff review edit.
func (h *Handler) UpdateWeek(c *gin.Context) {
	hallID, ok := h.hallID(c)
	if !ok {
		return
	}
	if !h.authorize(c, hallID) {
		return
	}

	var doc WeeklyMenu
	if err := c.BindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu document"})
		return
	}

	err := h.service.UpdateWeekly(c.Request.Context(), hallID, &doc)
	if errors.Is(err, ErrNotParsed) {
		c.JSON(http.StatusConflict, gin.H{"error": "no parsed menu to edit"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu updated"})
}

// AdminHandler exposes the review queue to admins.
type AdminHandler struct {
	service *Service
}

func NewAdminHandler(service *Service) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ListPending(c *gin.Context) {
	uploads, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if uploads == nil {
		uploads = []MenuUpload{}
	}
	c.JSON(http.StatusOK, gin.H{"pending": uploads})
}

func (h *AdminHandler) Approve(c *gin.Context) {
	hallID, err := strconv.Atoi(c.Param("hall_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hall id"})
		return
	}

	if err := h.service.Approve(c.Request.Context(), hallID, c.GetString("userID")); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu approved", "hall_id": hallID})
}

func (h *AdminHandler) Reject(c *gin.Context) {
	hallID, err := strconv.Atoi(c.Param("hall_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hall id"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BindJSON(&req); err != nil || req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rejection reason is required"})
		return
	}

	if err := h.service.Reject(c.Request.Context(), hallID, c.GetString("userID"), req.Reason); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu rejected", "hall_id": hallID})
}
