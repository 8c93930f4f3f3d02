package domain

type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image" yaml:"image"`
}

type Mart struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Rating       float64  `json:"rating" yaml:"rating"`
	DeliveryTime string   `json:"delivery_time" yaml:"delivery_time"`
	Distance     string   `json:"distance" yaml:"distance"`
	Image        string   `json:"image" yaml:"image"`
	Tags         []string `json:"tags" yaml:"tags"`
	IsOpen       bool     `json:"is_open" yaml:"is_open"`
}

// Product is immutable once the catalog is loaded. Prices are integer currency units.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	MRP          int64  `json:"mrp"`
	Image        string `json:"image"`
	CategoryID   string `json:"category"`
	MartID       string `json:"mart_id"`
	Weight       string `json:"weight"`
	IsVegetarian bool   `json:"is_vegetarian"`
}

// Savings returns how much cheaper the product is than its MRP.
func (p Product) Savings() int64 {
	if p.MRP <= p.Price {
		return 0
	}
	return p.MRP - p.Price
}
