package store

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ministore-next/internal/constants"
	"github.com/ministore-next/internal/http/response"
	"github.com/ministore-next/internal/logger"
	"github.com/ministore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddToCart handles the product page form post. Success always lands on the
// cart page; failures send the shopper back where they came from, with the
// outcome delivered as a session flash either way.
func (h *Handler) AddToCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		h.redirectToLogin(c)
		return
	}

	productID, perr := strconv.ParseUint(c.PostForm("product_id"), 10, 64)
	quantity := 1
	var qerr error
	if raw := c.PostForm("quantity"); raw != "" {
		quantity, qerr = strconv.Atoi(raw)
	}
	if perr != nil || qerr != nil {
		h.flashAndRedirect(c, sid, constants.MsgInvalidInput, h.backURL(c))
		return
	}

	result, err := h.CartService.AddItem(c.Request.Context(), sid, uint(productID), quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProduct), errors.Is(err, service.ErrInvalidQuantity):
			h.flashAndRedirect(c, sid, constants.MsgInvalidInput, h.backURL(c))
		case errors.Is(err, service.ErrProductNotFound):
			h.flashAndRedirect(c, sid, constants.MsgProductNotFound, h.backURL(c))
		default:
			logger.Errorw("store_add_to_cart_failed", "sid", sid, "product_id", productID, "error", err)
			h.flashAndRedirect(c, sid, constants.MsgInvalidInput, h.backURL(c))
		}
		return
	}

	message := constants.MsgProductAdded
	if result.AlreadyPresent {
		message = constants.MsgQuantityUpdated
	}
	h.flashAndRedirect(c, sid, message, constants.PathCart)
}

// UpdateQuantity is the cart page's AJAX endpoint for absolute quantity
// changes; zero removes the line. Every error reply leaves the cart exactly
// as it was.
func (h *Handler) UpdateQuantity(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		response.MethodNotAllowed(c, constants.MsgMethodNotAllowed)
		return
	}
	sid, ok := sessionID(c)
	if !ok {
		response.Unauthorized(c, constants.MsgLoginRequired)
		return
	}

	productID, perr := strconv.ParseUint(c.PostForm("product_id"), 10, 64)
	quantity, qerr := strconv.Atoi(c.PostForm("quantity"))
	if perr != nil || qerr != nil {
		response.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	result, err := h.CartService.SetQuantity(c.Request.Context(), sid, uint(productID), quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			response.BadRequest(c, constants.MsgInvalidRequest)
		case errors.Is(err, service.ErrLineNotFound):
			response.NotFound(c, constants.MsgItemNotInCart)
		default:
			appErr := response.WrapError(http.StatusInternalServerError, constants.MsgInvalidRequest, err)
			logger.Errorw("store_update_quantity_failed", "sid", sid, "product_id", productID, "error", appErr)
			response.ErrorFrom(c, appErr)
		}
		return
	}

	message := constants.MsgCartUpdated
	if result.Removed {
		message = constants.MsgItemRemoved
	}
	response.SuccessWith(c, response.CartUpdate{
		Envelope:             response.Envelope{Status: response.StatusSuccess, Message: message},
		NewSubtotalFormatted: h.Currency.Format(result.NewSubtotal),
		CartTotalFormatted:   h.Currency.Format(result.CartTotal),
		CartItemCount:        result.ItemCount,
		ProductID:            result.ProductID,
		ItemRemoved:          result.Removed,
	})
}

// ClearCart empties the cart through the AJAX clear_cart action.
func (h *Handler) ClearCart(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		response.MethodNotAllowed(c, constants.MsgMethodNotAllowed)
		return
	}
	sid, ok := sessionID(c)
	if !ok {
		response.Unauthorized(c, constants.MsgLoginRequired)
		return
	}
	if c.PostForm("action") != constants.CartActionClearCart {
		response.BadRequest(c, constants.MsgInvalidAction)
		return
	}

	if err := h.CartService.Clear(c.Request.Context(), sid); err != nil {
		appErr := response.WrapError(http.StatusInternalServerError, constants.MsgInvalidRequest, err)
		logger.Errorw("store_clear_cart_failed", "sid", sid, "error", appErr)
		response.ErrorFrom(c, appErr)
		return
	}
	response.Success(c, constants.MsgCartCleared)
}

// CartJSON returns the session's cart snapshot for the header badge and any
// script that needs the current totals.
func (h *Handler) CartJSON(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		response.Unauthorized(c, constants.MsgLoginRequired)
		return
	}

	summary, err := h.CartService.Summary(c.Request.Context(), sid)
	if err != nil {
		logger.Errorw("store_cart_json_failed", "sid", sid, "error", err)
		response.Error(c, http.StatusInternalServerError, constants.MsgInvalidRequest)
		return
	}

	lines := make([]gin.H, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		lines = append(lines, gin.H{
			"product_id":         line.ProductID,
			"name":               line.Name,
			"slug":               line.Slug,
			"image_path":         line.ImagePath,
			"quantity":           line.Quantity,
			"unit_price":         line.UnitPrice,
			"subtotal":           line.Subtotal,
			"subtotal_formatted": h.Currency.Format(line.Subtotal),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"status":               response.StatusSuccess,
		"items":                lines,
		"cart_total":           summary.Total,
		"cart_total_formatted": h.Currency.Format(summary.Total),
		"cart_item_count":      summary.ItemCount,
	})
}
