package domain

type AddressType string

const (
	AddressHome  AddressType = "Home"
	AddressWork  AddressType = "Work"
	AddressOther AddressType = "Other"
)

func (t AddressType) Valid() bool {
	return t == AddressHome || t == AddressWork || t == AddressOther
}

type Address struct {
	ID    string      `json:"id"`
	Type  AddressType `json:"type"`
	Value string      `json:"value"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Addresses []Address `json:"addresses"`
}
