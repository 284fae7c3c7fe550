package store

import (
	"net/http"

	"github.com/ministore-next/internal/logger"
	"github.com/ministore-next/internal/models"
	"github.com/ministore-next/internal/session"

	"github.com/gin-gonic/gin"
)

type productView struct {
	ID               uint
	Slug             string
	Name             string
	ShortDescription string
	ImagePath        string
	PriceFormatted   string
}

type lineView struct {
	ProductID         uint
	Name              string
	Slug              string
	ImagePath         string
	Quantity          int
	UnitPriceFormat   string
	SubtotalFormatted string
}

func (h *Handler) productViews(products []models.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{
			ID:               p.ID,
			Slug:             p.Slug,
			Name:             p.Name,
			ShortDescription: p.ShortDescription,
			ImagePath:        p.ImagePath,
			PriceFormatted:   h.Currency.Format(p.Price),
		})
	}
	return views
}

func (h *Handler) sessionView(c *gin.Context) (sid string, data session.Data) {
	sid, ok := sessionID(c)
	if !ok {
		return "", session.Data{}
	}
	err := h.Sessions.View(c.Request.Context(), sid, func(d *session.Data) {
		data = *d
	})
	if err != nil {
		logger.Errorw("store_session_view_failed", "sid", sid, "error", err)
	}
	return sid, data
}

// Index renders the catalog grid with the cart badge count.
func (h *Handler) Index(c *gin.Context) {
	products, err := h.ProductService.ListActive()
	if err != nil {
		logger.Errorw("store_index_failed", "error", err)
		c.String(http.StatusInternalServerError, "store unavailable")
		return
	}

	_, data := h.sessionView(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":     "Store",
		"Products":  h.productViews(products),
		"CartCount": data.Cart.Len(),
		"UserName":  data.UserName,
		"LoggedIn":  data.LoggedIn(),
	})
}

// ProductPage renders a single product by slug.
func (h *Handler) ProductPage(c *gin.Context) {
	product, err := h.ProductService.GetActiveBySlug(c.Param("slug"))
	if err != nil {
		c.String(http.StatusNotFound, "product not found")
		return
	}

	_, data := h.sessionView(c)
	c.HTML(http.StatusOK, "product.html", gin.H{
		"Title":     product.Name,
		"Product":   h.productViews([]models.Product{*product})[0],
		"CartCount": data.Cart.Len(),
		"UserName":  data.UserName,
		"LoggedIn":  data.LoggedIn(),
	})
}

// CartPage renders the cart table, consuming the pending flash message so it
// shows exactly once.
func (h *Handler) CartPage(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		h.redirectToLogin(c)
		return
	}

	flash, err := h.Sessions.TakeFlash(c.Request.Context(), sid)
	if err != nil {
		logger.Errorw("store_cart_flash_failed", "sid", sid, "error", err)
	}

	summary, err := h.CartService.Summary(c.Request.Context(), sid)
	if err != nil {
		logger.Errorw("store_cart_page_failed", "sid", sid, "error", err)
		c.String(http.StatusInternalServerError, "cart unavailable")
		return
	}

	lines := make([]lineView, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		lines = append(lines, lineView{
			ProductID:         line.ProductID,
			Name:              line.Name,
			Slug:              line.Slug,
			ImagePath:         line.ImagePath,
			Quantity:          line.Quantity,
			UnitPriceFormat:   h.Currency.Format(line.UnitPrice),
			SubtotalFormatted: h.Currency.Format(line.Subtotal),
		})
	}

	_, data := h.sessionView(c)
	c.HTML(http.StatusOK, "cart.html", gin.H{
		"Title":          "Your Cart",
		"Flash":          flash,
		"Lines":          lines,
		"TotalFormatted": h.Currency.Format(summary.Total),
		"CartCount":      summary.ItemCount,
		"UserName":       data.UserName,
		"LoggedIn":       data.LoggedIn(),
	})
}
