package domain

// DefaultShippingCost applies when a governorate is missing from the table
const DefaultShippingCost = 70.0

// Governorate is an Egyptian administrative region used as a shipping-cost key
type Governorate struct {
	Name         string  `json:"name"`
	ShippingCost float64 `json:"shippingCost"`
}

var governorates = []Governorate{
	{Name: "القاهرة", ShippingCost: 50},
	{Name: "الجيزة", ShippingCost: 50},
	{Name: "الإسكندرية", ShippingCost: 60},
	{Name: "القليوبية", ShippingCost: 55},
	{Name: "الشرقية", ShippingCost: 65},
	{Name: "الغربية", ShippingCost: 60},
	{Name: "المنوفية", ShippingCost: 60},
	{Name: "البحيرة", ShippingCost: 65},
	{Name: "الدقهلية", ShippingCost: 65},
}

// Governorates returns a copy of the supported shipping regions
func Governorates() []Governorate {
	out := make([]Governorate, len(governorates))
	copy(out, governorates)
	return out
}

// FindGovernorate looks a governorate up by its exact name
func FindGovernorate(name string) (Governorate, bool) {
	for _, g := range governorates {
		if g.Name == name {
			return g, true
		}
	}
	return Governorate{}, false
}

// ShippingCostFor returns the shipping cost for a governorate, falling back to DefaultShippingCost
func ShippingCostFor(name string) float64 {
	if g, ok := FindGovernorate(name); ok {
		return g.ShippingCost
	}
	return DefaultShippingCost
}
