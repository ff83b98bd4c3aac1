package services

import (
	"errors"

	"github.com/dmitrijs2005/storefront/internal/client/client"
)

// Fallback display messages.
const (
	MsgLoginFailed        = "Failed to login"
	MsgRegisterFailed     = "Failed to register"
	MsgProfileFailed      = "Failed to load profile"
	MsgLoadCartFailed     = "Failed to load cart"
	MsgAddItemFailed      = "Failed to add item"
	MsgUpdateItemFailed   = "Failed to update item"
	MsgRemoveItemFailed   = "Failed to remove item"
	MsgLoadProductsFailed = "Failed to load products"
	MsgLoadProductFailed  = "Failed to load product"
)

// ErrorMessage reduces err to a display string: the message of the API error
// payload when there is one, else the text of the API error or of the
// innermost wrapped cause, else fallback. Operation prefixes added while
// wrapping are not shown. A nil err yields "".
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return apiErr.Error()
	}

	if msg := rootCause(err).Error(); msg != "" {
		return msg
	}
	return fallback
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
