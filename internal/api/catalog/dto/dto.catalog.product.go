package catalogdto

// ProductCreateInput đầu vào tạo sản phẩm. Price/CostPrice đã ở đơn vị tiền tệ nhỏ nhất.
type ProductCreateInput struct {
	Name         string   `json:"name" validate:"required,max=200,no_xss"`
	Description  string   `json:"description" validate:"omitempty,max=2000,no_xss"`
	Company      string   `json:"company"`
	Price        int64    `json:"price" validate:"gte=0"`
	CostPrice    int64    `json:"costPrice" validate:"gte=0"`
	Category     string   `json:"category" validate:"required,oneof=grocery electronics clothing furniture beauty sports"`
	Quantity     int64    `json:"quantity" validate:"gte=0"`
	FreeShipping bool     `json:"freeShipping"`
	Tags         []string `json:"tags"`
	InStock      bool     `json:"inStock"`
}

// ProductUpdateInput đầu vào cập nhật sản phẩm (partial update).
type ProductUpdateInput struct {
	Name         string   `json:"name" validate:"omitempty,max=200,no_xss"`
	Description  string   `json:"description" validate:"omitempty,max=2000,no_xss"`
	Company      string   `json:"company"`
	Price        int64    `json:"price" validate:"omitempty,gte=0"`
	CostPrice    int64    `json:"costPrice" validate:"omitempty,gte=0"`
	Category     string   `json:"category" validate:"omitempty,oneof=grocery electronics clothing furniture beauty sports"`
	Quantity     int64    `json:"quantity" validate:"omitempty,gte=0"`
	FreeShipping bool     `json:"freeShipping"`
	Tags         []string `json:"tags"`
	InStock      bool     `json:"inStock"`
}
