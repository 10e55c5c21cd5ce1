package controllers

import (
	"errors"
	"net/http"

	"catering-shop/middleware"
	"catering-shop/models"
	"catering-shop/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkoutService *services.CheckoutService
	bookingService  *services.BookingService
}

func NewCheckoutController(checkoutService *services.CheckoutService, bookingService *services.BookingService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
		bookingService:  bookingService,
	}
}

// @Summary Submit order
// @Description Validates, re-checks capacity, reserves the slot and relays the order
// @Tags Checkout
// @Accept json
// @Produce json
// @Param body body models.CheckoutRequest true "Checkout form"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Submit(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Please fill in all required fields",
			Error:   err.Error(),
		})
		return
	}

	sessionID := middleware.SessionID(c)

	// The selection is resolved here and handed to the gate by value.
	sel, _ := ctrl.bookingService.Selection(sessionID)

	receipt, err := ctrl.checkoutService.Submit(c.Request.Context(), sessionID, req, sel)
	if err != nil {
		status, message := checkoutError(err)
		c.JSON(status, models.ErrorResponse{
			Success: false,
			Message: message,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Order submitted successfully",
		Data:    receipt,
	})
}

func checkoutError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrZipRequired),
		errors.Is(err, services.ErrAddressRequired):
		return http.StatusBadRequest, "Delivery requires a full address and zip code"
	case errors.Is(err, services.ErrZipNotAllowed):
		return http.StatusUnprocessableEntity, "Sorry, we do not deliver to that zip code"
	case errors.Is(err, services.ErrBookingIncomplete):
		return http.StatusBadRequest, "Please select a date and time before checking out"
	case errors.Is(err, services.ErrEmptyCart):
		return http.StatusBadRequest, "Your cart is empty"
	case errors.Is(err, services.ErrDateFull):
		return http.StatusConflict, "That date just filled up, please pick another"
	case errors.Is(err, services.ErrSubmissionInFlight):
		return http.StatusTooManyRequests, "Your order is already being processed"
	case errors.Is(err, services.ErrRelayFailed):
		return http.StatusBadGateway, "Order could not be delivered, please try again"
	default:
		return http.StatusInternalServerError, "Checkout failed"
	}
}
