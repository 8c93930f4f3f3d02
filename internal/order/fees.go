package order

// FeeSchedule holds the flat fees added on top of the cart subtotal.
type FeeSchedule struct {
	DeliveryFee int64 `json:"delivery_fee"`
	PlatformFee int64 `json:"platform_fee"`
}

func DefaultFees() FeeSchedule {
	return FeeSchedule{DeliveryFee: 30, PlatformFee: 5}
}

func (f FeeSchedule) Total(subtotal int64) int64 {
	return subtotal + f.DeliveryFee + f.PlatformFee
}
