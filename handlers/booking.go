package handlers

import (
	"net/http"

	"calmwave/models"
	"calmwave/services/booking"
	"calmwave/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: svc}
}

func (h *BookingHandler) CreateHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req models.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Bookings.Create(c.Request.Context(), s, req)
	if err != nil {
		utils.RespondError(c, "Failed to create booking", err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) ListMineHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	list, err := h.Bookings.ListForUser(c.Request.Context(), s)
	if err != nil {
		utils.RespondError(c, "Failed to list bookings", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) ListTherapistHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	list, err := h.Bookings.ListForTherapist(c.Request.Context(), s)
	if err != nil {
		utils.RespondError(c, "Failed to list bookings", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req models.StatusUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Bookings.UpdateStatus(c.Request.Context(), s, c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, "Failed to update booking status", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) FeedbackHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req models.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Bookings.SubmitFeedback(c.Request.Context(), s, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, "Failed to submit feedback", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) TherapistRatingHandler(c *gin.Context) {
	summary, err := h.Bookings.TherapistRating(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to load ratings", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *BookingHandler) ProgressHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	p, err := h.Bookings.Progress(c.Request.Context(), s)
	if err != nil {
		utils.RespondError(c, "Failed to load progress", err)
		return
	}
	c.JSON(http.StatusOK, p)
}
