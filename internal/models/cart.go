package models

// CartItem is one cart line. Product is a denormalized snapshot taken when
// the item was added so the cart renders and prices without a refetch.
type CartItem struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// Cart holds at most one line per product id. Total is derived from the
// items and never independently settable.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}
