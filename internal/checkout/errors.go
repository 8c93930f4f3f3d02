package checkout

import "errors"

var (
	ErrInvalidPaymentMethod = errors.New("payment method must be one of upi, card, gpay, cod")
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrPaymentDeclined      = errors.New("payment declined")
)
