package cartdto

// AddItemRequest adds a catalog entry to the session cart. Type may be
// omitted; product ids are tried before bundle ids.
type AddItemRequest struct {
	ItemID   string `json:"item_id" validate:"required,max=80"`
	Type     string `json:"type" validate:"omitempty,oneof=product bundle"`
	Quantity int    `json:"quantity" validate:"min=0,max=999"`
}

// UpdateQuantityRequest sets a line's quantity; zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
