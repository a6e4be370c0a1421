package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ryyderbros/wellness_server/internal/model"
)

func (s *Server) therapistSlots(c *gin.Context) {
	identity := currentIdentity(c)

	slots, err := s.slotService.GetSlots(c.Request.Context(), identity.UserID)
	if err != nil {
		s.logger.Error("Failed to fetch slots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch slots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

type createSlotRequest struct {
	StartTime string `json:"start_time" binding:"required"`
}

func (s *Server) createSlot(c *gin.Context) {
	identity := currentIdentity(c)

	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "start_time required"})
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid time"})
		return
	}

	slot, err := s.slotService.CreateSlot(c.Request.Context(), identity.UserID, start)
	if err != nil {
		s.logger.Error("Failed to create slot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create slot"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

func (s *Server) deleteSlot(c *gin.Context) {
	identity := currentIdentity(c)

	slotID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid slot ID"})
		return
	}

	deleted, err := s.slotService.DeleteSlot(c.Request.Context(), identity.UserID, slotID)
	if err != nil {
		s.logger.Error("Failed to delete slot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete slot"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Slot not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) therapistBookings(c *gin.Context) {
	identity := currentIdentity(c)

	bookings, err := s.bookingService.GetTherapistSessions(c.Request.Context(), identity.UserID)
	if err != nil {
		s.logger.Error("Failed to fetch bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (s *Server) getProfile(c *gin.Context) {
	identity := currentIdentity(c)

	profile, err := s.userService.GetTherapistProfile(c.Request.Context(), identity.UserID)
	if err != nil {
		s.logger.Error("Failed to fetch profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (s *Server) updateProfile(c *gin.Context) {
	identity := currentIdentity(c)

	var update model.TherapistProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid profile payload"})
		return
	}

	profile, err := s.userService.UpdateTherapistProfile(c.Request.Context(), identity.UserID, update)
	if err != nil {
		s.logger.Error("Failed to update profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (s *Server) uploadPhoto(c *gin.Context) {
	identity := currentIdentity(c)

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	ext := filepath.Ext(file.Filename)
	name := fmt.Sprintf("therapist_%d_%d%s", identity.UserID, time.Now().UnixNano(), ext)

	if err := c.SaveUploadedFile(file, filepath.Join(s.cfg.UploadDir, name)); err != nil {
		s.logger.Error("Failed to store photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload photo"})
		return
	}

	publicURL := "/uploads/" + name

	// keep headline and bio as they are
	current, err := s.userService.GetTherapistProfile(c.Request.Context(), identity.UserID)
	if err != nil || current == nil {
		s.logger.Error("Failed to load profile for photo update", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload photo"})
		return
	}

	profile, err := s.userService.UpdateTherapistProfile(c.Request.Context(), identity.UserID, model.TherapistProfileUpdate{
		PhotoURL:   &publicURL,
		Headline:   current.Headline,
		ProfileBio: current.ProfileBio,
	})
	if err != nil {
		s.logger.Error("Failed to update profile photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile, "photo_url": publicURL})
}
