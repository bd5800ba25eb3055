package model

// WarehouseID identifies the virtual warehouse branch that receives purchase
// entries before stock is transferred out to the showrooms.
const WarehouseID = "wh"

// Branch is a stock-holding location: a showroom or the warehouse.
type Branch struct {
	ID       string `json:"id"       yaml:"id"`
	Name     string `json:"name"     yaml:"name"`
	Location string `json:"location" yaml:"location"`
}
