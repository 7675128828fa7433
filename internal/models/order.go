package models

import "time"

type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
)

// Valid vérifie que le statut fait partie de l'énumération.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// CanAdvanceTo : progression linéaire Processing → Shipped → Delivered,
// sans retour en arrière ni saut d'étape. Delivered est terminal.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	switch s {
	case StatusProcessing:
		return next == StatusShipped
	case StatusShipped:
		return next == StatusDelivered
	}
	return false
}

// OrderItem fige la ligne de panier au moment de la commande, enrichie
// du rating et du nombre d'avis du catalogue.
type OrderItem struct {
	CartItem
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
}

// Order est immuable après création, à l'exception du statut (et de la
// suppression). Le total est un instantané du grand total au placement.
type Order struct {
	ID     string      `json:"id"`
	Date   time.Time   `json:"date"`
	Status OrderStatus `json:"status"`
	Total  float64     `json:"total"`
	Items  []OrderItem `json:"items"`
}
