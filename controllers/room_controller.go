package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops-backend/middleware"
	"hotelops-backend/services"
	"hotelops-backend/utils"
)

type UpdateRoomStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type HousekeepingCompleteRequest struct {
	RoomIDs []uint `json:"roomIds" binding:"required"`
}

type RoomController struct {
	Rooms *services.RoomService
	Clock utils.Clock
}

func NewRoomController(rooms *services.RoomService, clock utils.Clock) *RoomController {
	return &RoomController{Rooms: rooms, Clock: clock}
}

// GetRooms handles GET /api/rooms
func (ctl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctl.Rooms.List(c.Request.Context(), middleware.HotelID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id
func (ctl *RoomController) GetRoom(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	room, err := ctl.Rooms.FindByID(middleware.HotelID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// UpdateRoomStatus handles PATCH /api/rooms/:id/status. This is the
// housekeeping/maintenance write path; check-in and check-out go through the
// stay lifecycle instead.
func (ctl *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	if err := ctl.Rooms.UpdateStatus(c.Request.Context(), middleware.HotelID(c), id, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"roomId": id, "status": req.Status})
}

// CompleteHousekeeping handles POST /api/housekeeping/complete
func (ctl *RoomController) CompleteHousekeeping(c *gin.Context) {
	var req HousekeepingCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	updated, err := ctl.Rooms.MarkManyAvailable(c.Request.Context(), middleware.HotelID(c), req.RoomIDs, ctl.Clock.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": updated})
}
