package constants

// Cart flash messages shown on the next page render.
const (
	MsgProductAdded    = "Product added to cart!"
	MsgQuantityUpdated = "Product quantity updated in cart."
	MsgInvalidInput    = "Error: Invalid product ID or quantity."
	MsgProductNotFound = "Error: Product not found."
)

// Cart AJAX messages.
const (
	MsgCartUpdated        = "Cart updated."
	MsgItemRemoved        = "Item removed from cart."
	MsgCartCleared        = "Cart cleared."
	MsgItemNotInCart      = "Error: Item not in cart."
	MsgInvalidRequest     = "Error: Invalid request."
	MsgInvalidAction      = "Error: Invalid action."
	MsgMethodNotAllowed   = "Error: Method not allowed."
	MsgLoginRequired      = "Error: Login required."
	MsgInvalidCredentials = "Invalid email or password."
)

// Cart actions accepted by the AJAX endpoints.
const (
	CartActionClearCart = "clear_cart"
)

// Route paths referenced outside the router.
const (
	PathLogin = "/login"
	PathCart  = "/cart"
)

// Session defaults.
const (
	SessionCookieDefault   = "ministore_session"
	SessionTTLHoursDefault = 72
)

// Cache default configuration.
const (
	RedisPrefixDefault = "ms"
)

// Site currency defaults.
const (
	SiteCurrencySymbolDefault = "₱"
	SiteCurrencyCodeDefault   = "PHP"
)
