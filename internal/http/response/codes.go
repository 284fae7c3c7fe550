package response

// Wire status values for the storefront AJAX contract.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)
