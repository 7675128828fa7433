package models

type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Category      string   `json:"category"`
	Badge         string   `json:"badge,omitempty"`
	Description   string   `json:"description,omitempty"`
	Images        []string `json:"images,omitempty"`
	Stock         int      `json:"stock"`
}
