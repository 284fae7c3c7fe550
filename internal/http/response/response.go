package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the shared shape of every AJAX response: a status string and a
// human-readable message.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CartUpdate is the payload returned after a quantity change, carrying the
// recomputed line subtotal and cart totals already formatted for display.
// ItemRemoved is only present when the line was deleted.
type CartUpdate struct {
	Envelope
	NewSubtotalFormatted string `json:"new_subtotal_formatted"`
	CartTotalFormatted   string `json:"cart_total_formatted"`
	CartItemCount        int    `json:"cart_item_count"`
	ProductID            uint   `json:"product_id"`
	ItemRemoved          bool   `json:"item_removed,omitempty"`
}

// Success writes a bare success envelope.
func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Message: message})
}

// SuccessWith writes a success payload that embeds Envelope.
func SuccessWith(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Error writes an error envelope with the given HTTP status.
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Envelope{Status: StatusError, Message: message})
}

// ErrorFrom writes an error envelope from an AppError.
func ErrorFrom(c *gin.Context, appErr *AppError) {
	Error(c, appErr.HTTPStatus, appErr.Message)
}

// BadRequest writes a 400 error envelope.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound writes a 404 error envelope.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Unauthorized writes a 401 error envelope.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// MethodNotAllowed writes a 405 error envelope.
func MethodNotAllowed(c *gin.Context, message string) {
	Error(c, http.StatusMethodNotAllowed, message)
}
