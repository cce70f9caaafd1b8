package hall

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name   string `json:"name"`
		Campus string `json:"campus"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	hall, err := h.service.CreateHall(c.Request.Context(), c.GetString("userID"), req.Name, req.Campus)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, hall)
}

func (h *Handler) ListMine(c *gin.Context) {
	halls, err := h.service.ListMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if halls == nil {
		halls = []Hall{}
	}
	c.JSON(http.StatusOK, gin.H{"halls": halls})
}

func (h *Handler) Approve(c *gin.Context) {
	hallID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hall id"})
		return
	}

	if err := h.service.Approve(c.Request.Context(), hallID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hall approved", "hall_id": hallID})
}
