package cartdto

// AddItemInput đầu vào thêm sản phẩm vào giỏ.
type AddItemInput struct {
	ProductID string `json:"productId" validate:"required,exists=products"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}
