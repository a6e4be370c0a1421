package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ryyderbros/wellness_server/internal/repository"
)

type createBookingRequest struct {
	SlotID int64 `json:"slot_id" binding:"required"`
}

func (s *Server) createBooking(c *gin.Context) {
	identity := currentIdentity(c)

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid slot ID"})
		return
	}

	booking, err := s.bookingService.BookSlot(c.Request.Context(), req.SlotID, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, gin.H{"message": "Slot unavailable"})
		case errors.Is(err, repository.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Slot not found"})
		case errors.Is(err, repository.ErrClientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Client not found"})
		default:
			s.logger.Error("Failed to create booking", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

func (s *Server) myBookings(c *gin.Context) {
	identity := currentIdentity(c)

	bookings, err := s.bookingService.GetClientBookings(c.Request.Context(), identity.UserID)
	if err != nil {
		s.logger.Error("Failed to fetch bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (s *Server) listTherapists(c *gin.Context) {
	therapists, err := s.userService.GetTherapists(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to fetch therapists", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch therapists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"therapists": therapists})
}

func (s *Server) therapistAvailableSlots(c *gin.Context) {
	therapistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return
	}

	slots, err := s.slotService.GetAvailableSlots(c.Request.Context(), therapistID)
	if err != nil {
		s.logger.Error("Failed to fetch slots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch slots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
