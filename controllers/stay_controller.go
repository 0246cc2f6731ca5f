package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotelops-backend/middleware"
	"hotelops-backend/services"
	"hotelops-backend/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateStayRequest struct {
	RoomID          uint   `json:"roomId" binding:"required"`
	GuestName       string `json:"guestName" binding:"required"`
	PhoneNumber     string `json:"phoneNumber" binding:"required"`
	EmailAddress    string `json:"emailAddress"`
	Address         string `json:"address"`
	CheckInDate     string `json:"checkInDate" binding:"required"`
	CheckOutDate    string `json:"checkOutDate" binding:"required"`
	Adults          int    `json:"adults"`
	Children        int    `json:"children"`
	SpecialRequests string `json:"specialRequests"`
	Type            string `json:"type" binding:"required"`
	PaymentMethod   string `json:"paymentMethod"`
	PaymentDate     string `json:"paymentDate"`
}

type UpdateStayRequest struct {
	GuestName       *string `json:"guestName"`
	PhoneNumber     *string `json:"phoneNumber"`
	EmailAddress    *string `json:"emailAddress"`
	SpecialRequests *string `json:"specialRequests"`
	Status          *string `json:"status"`
	PaymentStatus   *string `json:"paymentStatus"`
	PaymentMethod   *string `json:"paymentMethod"`
}

// ---------------------------
// Controller
// ---------------------------

type StayController struct {
	Stays  *services.StayService
	Search *services.GuestSearchService
}

func NewStayController(stays *services.StayService, search *services.GuestSearchService) *StayController {
	return &StayController{Stays: stays, Search: search}
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// CreateStay handles POST /api/stays
func (ctl *StayController) CreateStay(c *gin.Context) {
	var req CreateStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkInDate format")
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOutDate format")
		return
	}

	input := services.CreateStayInput{
		RoomID:          req.RoomID,
		GuestName:       req.GuestName,
		PhoneNumber:     req.PhoneNumber,
		EmailAddress:    req.EmailAddress,
		Address:         req.Address,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Adults:          req.Adults,
		Children:        req.Children,
		SpecialRequests: req.SpecialRequests,
		Type:            req.Type,
		PaymentMethod:   req.PaymentMethod,
	}
	if req.PaymentDate != "" {
		pd, err := parseDate(req.PaymentDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid paymentDate format")
			return
		}
		input.PaymentDate = &pd
	}

	stay, err := ctl.Stays.CreateStay(c.Request.Context(), middleware.HotelID(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, stay)
}

// UpdateStay handles PATCH /api/stays/:id
func (ctl *StayController) UpdateStay(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	stay, err := ctl.Stays.EditStay(c.Request.Context(), middleware.HotelID(c), id, services.EditStayInput{
		GuestName:       req.GuestName,
		PhoneNumber:     req.PhoneNumber,
		EmailAddress:    req.EmailAddress,
		SpecialRequests: req.SpecialRequests,
		Status:          req.Status,
		PaymentStatus:   req.PaymentStatus,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stay)
}

// GetStays handles GET /api/stays
func (ctl *StayController) GetStays(c *gin.Context) {
	stays, err := ctl.Stays.List(middleware.HotelID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stays)
}

// GetStay handles GET /api/stays/:id
func (ctl *StayController) GetStay(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	stay, err := ctl.Stays.GetByID(middleware.HotelID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stay)
}

// SearchStays handles GET /api/stays/search?name=
func (ctl *StayController) SearchStays(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	stays, err := ctl.Search.SearchByGuestName(middleware.HotelID(c), c.Query("name"), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stays)
}
