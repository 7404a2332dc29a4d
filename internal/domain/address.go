package domain

// AddressRole tags which role an address plays in a checkout.
type AddressRole string

const (
	AddressShipping AddressRole = "shipping"
	AddressBilling  AddressRole = "billing"
	AddressPPU      AddressRole = "ppu"
	AddressE911     AddressRole = "e911"
)

// Address is a postal address tagged with its checkout role.
type Address struct {
	Role          AddressRole `json:"role"`
	StreetAddress string      `json:"street_address"`
	StreetLine2   string      `json:"street_address_2,omitempty"`
	City          string      `json:"city"`
	State         string      `json:"state"`
	ZipCode       string      `json:"zip_code"`
	Country       string      `json:"country"`
}

// Complete reports whether the required fields are all present.
func (a Address) Complete() bool {
	return a.StreetAddress != "" && a.City != "" && a.State != "" && a.ZipCode != ""
}

// WithRole returns a copy of the address with only the role changed.
func (a Address) WithRole(role AddressRole) Address {
	a.Role = role
	return a
}

// AddressBundle holds the four coexisting checkout addresses.
type AddressBundle struct {
	Shipping Address `json:"shipping"`
	Billing  Address `json:"billing"`
	PPU      Address `json:"ppu"`
	E911     Address `json:"e911"`
}
