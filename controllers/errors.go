package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops-backend/services"
	"hotelops-backend/utils"
)

// respondServiceError maps business error kinds to HTTP responses. Anything
// unrecognized is an infrastructure failure: log it, answer 500, let the
// caller retry.
func respondServiceError(c *gin.Context, err error) {
	var validation *services.ValidationError
	var unavailable *services.RoomUnavailableError
	var conflict *services.BookingConflictError
	var transition *services.InvalidTransitionError
	var payTransition *services.InvalidPaymentTransitionError

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "record not found")
	case errors.As(err, &validation):
		utils.JSONErrorDetail(c, http.StatusBadRequest, "validation_error", validation.Error(), gin.H{
			"field": validation.Field,
		})
	case errors.As(err, &unavailable):
		utils.JSONErrorDetail(c, http.StatusConflict, "room_unavailable", unavailable.Error(), gin.H{
			"roomId": unavailable.RoomID,
			"status": unavailable.Status,
		})
	case errors.As(err, &conflict):
		utils.JSONErrorDetail(c, http.StatusConflict, "booking_conflict", conflict.Error(), gin.H{
			"stayId":        conflict.StayID,
			"type":          conflict.StayType,
			"paymentStatus": conflict.PaymentStatus,
			"checkInDate":   conflict.CheckInDate.Format("2006-01-02"),
			"checkOutDate":  conflict.CheckOutDate.Format("2006-01-02"),
		})
	case errors.As(err, &transition):
		utils.JSONErrorDetail(c, http.StatusConflict, "invalid_transition", transition.Error(), gin.H{
			"current":   transition.Current,
			"requested": transition.Requested,
		})
	case errors.As(err, &payTransition):
		utils.JSONErrorDetail(c, http.StatusConflict, "invalid_payment_transition", payTransition.Error(), gin.H{
			"current":   payTransition.Current,
			"requested": payTransition.Requested,
		})
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "internal error, please retry")
	}
}
