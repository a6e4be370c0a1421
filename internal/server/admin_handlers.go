package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ryyderbros/wellness_server/internal/model"
)

func (s *Server) adminUsers(c *gin.Context) {
	users, err := s.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to fetch users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (s *Server) adminTherapists(c *gin.Context) {
	therapists, err := s.userService.GetTherapistsWithSlots(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to fetch therapists", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch therapists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"therapists": therapists})
}

func (s *Server) adminBookings(c *gin.Context) {
	bookings, err := s.bookingService.GetAllBookings(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to fetch bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

type updateRoleRequest struct {
	Role model.Role `json:"role" binding:"required"`
}

func (s *Server) adminUpdateRole(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role"})
		return
	}

	updated, err := s.userService.UpdateRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		s.logger.Error("Failed to update role", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update role"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}
