package product

import "github.com/MikeMC777/pos-facade/internal/money"

type Product struct {
	ID            int64        `json:"id,omitempty"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Price         money.Amount `json:"price"`
	CategoryID    int64        `json:"categoryId,omitempty"`
	StockQuantity int          `json:"stockQuantity"`
	Barcode       string       `json:"barcode,omitempty"`
	ImageURL      string       `json:"imageUrl,omitempty"`
}

// Image is the payload of the product image endpoints.
type Image struct {
	ImageURL string `json:"imageUrl"`
}
