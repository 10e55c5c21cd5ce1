package controllers

import (
	"fmt"
	"net/http"

	"catering-shop/middleware"
	"catering-shop/models"
	"catering-shop/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// AddToCartRequest is the catalog collaborator's payload. Price accepts a
// JSON number or a decimal string.
type AddToCartRequest struct {
	ID       string          `json:"id" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	TraySize string          `json:"tray_size"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
}

// @Summary Add item to cart
// @Description Adds a catalog item; the same id merges by incrementing quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param item body AddToCartRequest true "Item"
// @Success 200 {object} models.Response
// @Router /cart/items [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid item",
			Error:   err.Error(),
		})
		return
	}

	sessionID := middleware.SessionID(c)
	cart, err := ctrl.cartService.Add(c.Request.Context(), sessionID, models.CartItem{
		ID:       req.ID,
		Name:     req.Name,
		TraySize: req.TraySize,
		Price:    req.Price,
		Image:    req.Image,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to add item to cart",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: fmt.Sprintf("%s (%s) was added to your cart!", req.Name, req.TraySize),
		Data:    ctrl.cartService.View(cart, false),
	})
}

// @Summary Get cart
// @Description Returns the rendered cart: rows, totals, badge and empty flag
// @Tags Cart
// @Produce json
// @Param delivery query bool false "Delivery selected"
// @Success 200 {object} models.CartView
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	cart, err := ctrl.cartService.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to load cart",
		})
		return
	}

	delivery := c.Query("delivery") == "true"
	c.JSON(http.StatusOK, ctrl.cartService.View(cart, delivery))
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// @Summary Update item quantity
// @Description Sets a line's quantity; zero or below removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param body body UpdateQuantityRequest true "Quantity"
// @Success 200 {object} models.CartView
// @Router /cart/items/{id} [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid quantity",
			Error:   err.Error(),
		})
		return
	}

	sessionID := middleware.SessionID(c)
	cart, err := ctrl.cartService.SetQuantity(c.Request.Context(), sessionID, c.Param("id"), req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to update quantity",
		})
		return
	}

	delivery := c.Query("delivery") == "true"
	c.JSON(http.StatusOK, ctrl.cartService.View(cart, delivery))
}

// @Summary Remove item
// @Tags Cart
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} models.CartView
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	cart, err := ctrl.cartService.Remove(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to remove item",
		})
		return
	}

	delivery := c.Query("delivery") == "true"
	c.JSON(http.StatusOK, ctrl.cartService.View(cart, delivery))
}
