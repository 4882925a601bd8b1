package domain

// ChargeType is a point pack that can be credited to an account.
type ChargeType string

const (
	Charge100  ChargeType = "COIN_100"
	Charge500  ChargeType = "COIN_500"
	Charge1000 ChargeType = "COIN_1000"
	Charge3000 ChargeType = "COIN_3000"
)

// ChargeSpec describes a point pack.
type ChargeSpec struct {
	Type         ChargeType `json:"type"`
	DisplayName  string     `json:"display_name"`
	Points       int64      `json:"points"`
	DisplayPrice int64      `json:"display_price"`
}

// ChargeOrder is the listing order of point packs.
var ChargeOrder = []ChargeType{Charge100, Charge500, Charge1000, Charge3000}

var Charges = map[ChargeType]ChargeSpec{
	Charge100:  {Type: Charge100, DisplayName: "100 coins", Points: 100, DisplayPrice: 1000},
	Charge500:  {Type: Charge500, DisplayName: "500 coins", Points: 500, DisplayPrice: 4900},
	Charge1000: {Type: Charge1000, DisplayName: "1,000 coins", Points: 1000, DisplayPrice: 9500},
	Charge3000: {Type: Charge3000, DisplayName: "3,000 coins", Points: 3000, DisplayPrice: 27000},
}
