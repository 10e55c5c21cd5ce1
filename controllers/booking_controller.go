package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"catering-shop/middleware"
	"catering-shop/models"
	"catering-shop/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	bookingService *services.BookingService
}

func NewBookingController(bookingService *services.BookingService) *BookingController {
	return &BookingController{bookingService: bookingService}
}

// @Summary Month grid
// @Description Day cells with eligibility recomputed against now at render time
// @Tags Bookings
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} models.MonthGrid
// @Router /bookings/calendar [get]
func (ctrl *BookingController) GetCalendar(c *gin.Context) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid month"})
		return
	}

	c.JSON(http.StatusOK, ctrl.bookingService.MonthGrid(year, time.Month(month)))
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

// @Summary Select booking date
// @Description Picks an eligible date, clearing any previously chosen time
// @Tags Bookings
// @Accept json
// @Produce json
// @Param body body SelectDateRequest true "Date (YYYY-MM-DD)"
// @Success 200 {object} models.Response
// @Router /bookings/date [post]
func (ctrl *BookingController) SelectDate(c *gin.Context) {
	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request",
			Error:   err.Error(),
		})
		return
	}

	sessionID := middleware.SessionID(c)
	slots, err := ctrl.bookingService.SelectDate(sessionID, req.Date)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrDateNotBookable) {
			status = http.StatusConflict
		}
		c.JSON(status, models.ErrorResponse{
			Success: false,
			Message: "Date cannot be booked",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Date selected, choose a time",
		Data:    gin.H{"date": req.Date, "slots": slots},
	})
}

type SelectTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

// @Summary Select booking time
// @Description Completes the booking selection; checkout becomes available
// @Tags Bookings
// @Accept json
// @Produce json
// @Param body body SelectTimeRequest true "Slot value or label"
// @Success 200 {object} models.Response
// @Router /bookings/time [post]
func (ctrl *BookingController) SelectTime(c *gin.Context) {
	var req SelectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request",
			Error:   err.Error(),
		})
		return
	}

	sessionID := middleware.SessionID(c)
	sel, err := ctrl.bookingService.SelectTime(sessionID, req.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Time cannot be selected",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Booking selected",
		Data:    sel,
	})
}

// @Summary Current booking selection
// @Tags Bookings
// @Produce json
// @Success 200 {object} models.Response
// @Router /bookings/selection [get]
func (ctrl *BookingController) GetSelection(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	sel, ok := ctrl.bookingService.Selection(sessionID)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    gin.H{"selection": sel, "complete": ok && sel.Complete()},
	})
}
