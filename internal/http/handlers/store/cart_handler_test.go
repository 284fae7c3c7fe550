package store

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ministore-next/internal/config"
	"github.com/ministore-next/internal/currency"
	"github.com/ministore-next/internal/models"
	"github.com/ministore-next/internal/provider"
	"github.com/ministore-next/internal/repository"
	"github.com/ministore-next/internal/service"
	"github.com/ministore-next/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type handlerFixture struct {
	engine    *gin.Engine
	container *provider.Container
	repo      repository.ProductRepository
}

func setupHandlerTest(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessions := session.NewManager(session.NewMemoryStore(time.Hour), "test_session", time.Hour, false)
	productService := service.NewProductService(productRepo)

	cfg := &config.Config{}
	cfg.Store.FallbackRedirect = "/"
	container := &provider.Container{
		Config:          cfg,
		Sessions:        sessions,
		Currency:        currency.New("₱", "PHP"),
		ProductRepo:     productRepo,
		UserRepo:        userRepo,
		ProductService:  productService,
		CartService:     service.NewCartService(sessions, productService),
		UserAuthService: service.NewUserAuthService(userRepo),
	}
	handler := New(container)

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("cart.html").Parse(
		`{{define "cart.html"}}flash={{.Flash}};total={{.TotalFormatted}};count={{.CartCount}}{{end}}` +
			`{{define "login.html"}}flash={{.Flash}}{{end}}`,
	)))
	r.Use(func(c *gin.Context) {
		if cookie, err := c.Cookie("test_session"); err == nil && cookie != "" {
			c.Set(SessionIDKey, cookie)
		}
		c.Next()
	})
	r.GET("/cart", handler.CartPage)
	r.POST("/cart/add", handler.AddToCart)
	r.POST("/cart/update-quantity", handler.UpdateQuantity)
	r.GET("/cart/update-quantity", handler.UpdateQuantity)
	r.POST("/cart/clear", handler.ClearCart)
	r.GET("/api/cart", handler.CartJSON)
	r.GET("/login", handler.LoginPage)
	r.POST("/login", handler.Login)

	return &handlerFixture{engine: r, container: container, repo: productRepo}
}

func (f *handlerFixture) seedProduct(t *testing.T, slug, price string) *models.Product {
	t.Helper()
	amount, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("bad price %q: %v", price, err)
	}
	product := &models.Product{
		Slug:     slug,
		Name:     "Product " + slug,
		Price:    models.NewMoneyFromDecimal(amount),
		IsActive: true,
	}
	if err := f.repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (f *handlerFixture) postForm(t *testing.T, sid, path string, form url.Values, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "test_session", Value: sid})
	}
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *handlerFixture) get(t *testing.T, sid, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "test_session", Value: sid})
	}
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *handlerFixture) takeFlash(t *testing.T, sid string) string {
	t.Helper()
	flash, err := f.container.Sessions.TakeFlash(context.Background(), sid)
	if err != nil {
		t.Fatalf("take flash failed: %v", err)
	}
	return flash
}

func TestAddToCartRedirectsToCartWithFlash(t *testing.T) {
	f := setupHandlerTest(t)
	f.seedProduct(t, "mug", "100.00")

	form := url.Values{}
	form.Set("product_id", "1")
	form.Set("quantity", "2")

	w := f.postForm(t, "sid-1", "/cart/add", form, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("status want 302 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/cart" {
		t.Fatalf("redirect want /cart got %s", loc)
	}
	if flash := f.takeFlash(t, "sid-1"); flash != "Product added to cart!" {
		t.Fatalf("flash want added message got %q", flash)
	}
}

func TestAddToCartRepeatFlashesQuantityUpdated(t *testing.T) {
	f := setupHandlerTest(t)
	f.seedProduct(t, "mug", "100.00")

	form := url.Values{}
	form.Set("product_id", "1")
	form.Set("quantity", "1")

	f.postForm(t, "sid-1", "/cart/add", form, nil)
	f.takeFlash(t, "sid-1")
	f.postForm(t, "sid-1", "/cart/add", form, nil)

	if flash := f.takeFlash(t, "sid-1"); flash != "Product quantity updated in cart." {
		t.Fatalf("flash want updated message got %q", flash)
	}

	summary, err := f.container.CartService.Summary(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Lines) != 1 || summary.Lines[0].Quantity != 2 {
		t.Fatalf("repeat add should increment, got %+v", summary.Lines)
	}
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	f := setupHandlerTest(t)
	f.seedProduct(t, "mug", "100.00")

	form := url.Values{}
	form.Set("product_id", "1")

	w := f.postForm(t, "sid-1", "/cart/add", form, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("status want 302 got %d", w.Code)
	}

	summary, err := f.container.CartService.Summary(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Lines) != 1 || summary.Lines[0].Quantity != 1 {
		t.Fatalf("missing quantity should add one unit, got %+v", summary.Lines)
	}
}

func TestAddToCartInvalidInputRedirectsBack(t *testing.T) {
	f := setupHandlerTest(t)
	f.seedProduct(t, "mug", "100.00")

	form := url.Values{}
	form.Set("product_id", "1")
	form.Set("quantity", "zero")

	w := f.postForm(t, "sid-1", "/cart/add", form, map[string]string{"Referer": "/products/mug"})
	if w.Code != http.StatusFound {
		t.Fatalf("status want 302 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/products/mug" {
		t.Fatalf("redirect want referer got %s", loc)
	}
	if flash := f.takeFlash(t, "sid-1"); flash != "Error: Invalid product ID or quantity." {
		t.Fatalf("flash want invalid message got %q", flash)
	}

	summary, err := f.container.CartService.Summary(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.ItemCount != 0 {
		t.Fatalf("failed add must not touch the cart, got %d lines", summary.ItemCount)
	}
}

func TestAddToCartUnknownProductFlashesNotFound(t *testing.T) {
	f := setupHandlerTest(t)

	form := url.Values{}
	form.Set("product_id", "999")
	form.Set("quantity", "1")

	w := f.postForm(t, "sid-1", "/cart/add", form, nil)
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("missing referer should use fallback, got %s", loc)
	}
	if flash := f.takeFlash(t, "sid-1"); flash != "Error: Product not found." {
		t.Fatalf("flash want not found message got %q", flash)
	}
}

func TestUpdateQuantityReturnsTotals(t *testing.T) {
	f := setupHandlerTest(t)
	f.seedProduct(t, "mug", "100.00")

	add := url.Values{}
	add.Set("product_id", "1")
	add.Set("quantity", "2")
	f.postForm(t, "sid-1", "/cart/add", add, nil)

	update := url.Values{}
	update.Set("product_id", "1")
	update.Set("quantity", "5")
	w := f.postForm(t, "sid-1", "/cart/update-quantity", update, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Status               string `json:"status"`
		Message              string `json:"message"`
		NewSubtotalFormatted string `json:"new_subtotal_formatted"`
		CartTotalFormatted   string `json:"cart_total_formatted"`
		CartItemCount        int    `json:"cart_item_count"`
		ProductID            uint   `json:"product_id"`
		ItemRemoved          bool   `json:"item_removed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.Status != "success" || resp.Message != "Cart updated." {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.NewSubtotalFormatted != "₱500.00" || resp.CartTotalFormatted != "₱500.00" {
		t.Fatalf("formatted totals wrong: %+v", resp)
	}
	if resp.CartItemCount != 1 || resp.ProductID != 1 || resp.ItemRemoved {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	f := setupHandlerTest(t)
	f.seedProduct(t, "mug", "100.00")

	add := url.Values{}
	add.Set("product_id", "1")
	add.Set("quantity", "2")
	f.postForm(t, "sid-1", "/cart/add", add, nil)

	update := url.Values{}
	update.Set("product_id", "1")
	update.Set("quantity", "0")
	w := f.postForm(t, "sid-1", "/cart/update-quantity", update, nil)

	var resp struct {
		Status             string `json:"status"`
		Message            string `json:"message"`
		ItemRemoved        bool   `json:"item_removed"`
		CartItemCount      int    `json:"cart_item_count"`
		CartTotalFormatted string `json:"cart_total_formatted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if !resp.ItemRemoved || resp.Message != "Item removed from cart." {
		t.Fatalf("zero quantity should remove, got %+v", resp)
	}
	if resp.CartItemCount != 0 || resp.CartTotalFormatted != "₱0.00" {
		t.Fatalf("cart should be empty, got %+v", resp)
	}
}

func TestUpdateQuantityMissingLineIs404AndNoOp(t *testing.T) {
	f := setupHandlerTest(t)
	f.seedProduct(t, "mug", "100.00")

	add := url.Values{}
	add.Set("product_id", "1")
	add.Set("quantity", "2")
	f.postForm(t, "sid-1", "/cart/add", add, nil)

	update := url.Values{}
	update.Set("product_id", "999")
	update.Set("quantity", "4")
	w := f.postForm(t, "sid-1", "/cart/update-quantity", update, nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error: Item not in cart.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	summary, err := f.container.CartService.Summary(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.ItemCount != 1 || summary.Total.String() != "200.00" {
		t.Fatalf("failed update must not change the cart, got count %d total %s", summary.ItemCount, summary.Total.String())
	}
}

func TestUpdateQuantityRejectsNegativeQuantity(t *testing.T) {
	f := setupHandlerTest(t)
	f.seedProduct(t, "mug", "100.00")

	add := url.Values{}
	add.Set("product_id", "1")
	add.Set("quantity", "1")
	f.postForm(t, "sid-1", "/cart/add", add, nil)

	update := url.Values{}
	update.Set("product_id", "1")
	update.Set("quantity", "-3")
	w := f.postForm(t, "sid-1", "/cart/update-quantity", update, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
}

func TestUpdateQuantityRejectsWrongMethod(t *testing.T) {
	f := setupHandlerTest(t)

	w := f.get(t, "sid-1", "/cart/update-quantity")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status want 405 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error: Method not allowed.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestClearCartRejectsUnknownAction(t *testing.T) {
	f := setupHandlerTest(t)

	clear := url.Values{}
	clear.Set("action", "explode")
	w := f.postForm(t, "sid-1", "/cart/clear", clear, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error: Invalid action.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestClearCartEmptiesCart(t *testing.T) {
	f := setupHandlerTest(t)
	f.seedProduct(t, "mug", "100.00")

	add := url.Values{}
	add.Set("product_id", "1")
	add.Set("quantity", "2")
	f.postForm(t, "sid-1", "/cart/add", add, nil)

	clear := url.Values{}
	clear.Set("action", "clear_cart")
	w := f.postForm(t, "sid-1", "/cart/clear", clear, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Cart cleared.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	summary, err := f.container.CartService.Summary(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.ItemCount != 0 {
		t.Fatalf("cart should be empty, got %d lines", summary.ItemCount)
	}
}

func TestUpdateQuantityRemovesOnlyTargetLine(t *testing.T) {
	f := setupHandlerTest(t)
	f.seedProduct(t, "mug", "100.00")
	f.seedProduct(t, "shirt", "250.00")

	for _, id := range []string{"1", "2"} {
		add := url.Values{}
		add.Set("product_id", id)
		add.Set("quantity", "1")
		f.postForm(t, "sid-1", "/cart/add", add, nil)
	}

	remove := url.Values{}
	remove.Set("product_id", "1")
	remove.Set("quantity", "0")
	w := f.postForm(t, "sid-1", "/cart/update-quantity", remove, nil)

	var resp struct {
		ItemRemoved        bool   `json:"item_removed"`
		CartItemCount      int    `json:"cart_item_count"`
		CartTotalFormatted string `json:"cart_total_formatted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if !resp.ItemRemoved || resp.CartItemCount != 1 || resp.CartTotalFormatted != "₱250.00" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCartJSONReturnsSnapshot(t *testing.T) {
	f := setupHandlerTest(t)
	f.seedProduct(t, "mug", "1250.50")

	add := url.Values{}
	add.Set("product_id", "1")
	add.Set("quantity", "2")
	f.postForm(t, "sid-1", "/cart/add", add, nil)

	w := f.get(t, "sid-1", "/api/cart")
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		Status             string `json:"status"`
		CartItemCount      int    `json:"cart_item_count"`
		CartTotalFormatted string `json:"cart_total_formatted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.Status != "success" || resp.CartItemCount != 1 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp.CartTotalFormatted != "₱2,501.00" {
		t.Fatalf("total want ₱2,501.00 got %s", resp.CartTotalFormatted)
	}
}

func TestCartPageShowsFlashOnce(t *testing.T) {
	f := setupHandlerTest(t)
	f.seedProduct(t, "mug", "100.00")

	add := url.Values{}
	add.Set("product_id", "1")
	add.Set("quantity", "1")
	f.postForm(t, "sid-1", "/cart/add", add, nil)

	first := f.get(t, "sid-1", "/cart")
	if first.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", first.Code)
	}
	if !strings.Contains(first.Body.String(), "flash=Product added to cart!") {
		t.Fatalf("first render should show the flash, got %s", first.Body.String())
	}

	second := f.get(t, "sid-1", "/cart")
	if strings.Contains(second.Body.String(), "Product added to cart!") {
		t.Fatalf("flash must show exactly once, got %s", second.Body.String())
	}
	if !strings.Contains(second.Body.String(), "total=₱100.00") {
		t.Fatalf("cart total missing, got %s", second.Body.String())
	}
}
