package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops-backend/middleware"
	"hotelops-backend/models"
	"hotelops-backend/services"
	"hotelops-backend/utils"
)

type CreateOrderRequest struct {
	RoomID      *uint              `json:"roomId"`
	TableNumber string             `json:"tableNumber"`
	OrderType   string             `json:"orderType" binding:"required"`
	Items       []models.OrderItem `json:"items" binding:"required"`
	Discount    float64            `json:"discount"`
	Tax         float64            `json:"tax"`
}

type UpdateOrderRequest struct {
	Status        *string `json:"status"`
	PaymentMethod *string `json:"paymentMethod"`
}

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// CreateOrder handles POST /api/orders
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	order, err := ctl.Orders.Create(middleware.HotelID(c), services.CreateOrderInput{
		RoomID:      req.RoomID,
		TableNumber: req.TableNumber,
		OrderType:   req.OrderType,
		Items:       req.Items,
		Discount:    req.Discount,
		Tax:         req.Tax,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, order)
}

// UpdateOrder handles PATCH /api/orders/:id
func (ctl *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	order, err := ctl.Orders.Edit(middleware.HotelID(c), id, services.EditOrderInput{
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}

// GetOrder handles GET /api/orders/:id
func (ctl *OrderController) GetOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := ctl.Orders.GetByID(middleware.HotelID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}
