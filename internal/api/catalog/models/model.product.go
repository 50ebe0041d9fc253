// Package models - model sản phẩm (Product) thuộc domain catalog.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các category sản phẩm được hỗ trợ.
const (
	CategoryGrocery     = "grocery"
	CategoryElectronics = "electronics"
	CategoryClothing    = "clothing"
	CategoryFurniture   = "furniture"
	CategoryBeauty      = "beauty"
	CategorySports      = "sports"
)

// Product định nghĩa mô hình sản phẩm.
// Price và CostPrice lưu theo đơn vị tiền tệ nhỏ nhất (int64) để tránh sai số float.
// Invariant: Quantity >= 0. Price >= CostPrice là kỳ vọng nghiệp vụ nhưng không enforce.
type Product struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" index:"text"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	Company      string             `json:"company,omitempty" bson:"company,omitempty"`
	Price        int64              `json:"price" bson:"price"`
	CostPrice    int64              `json:"costPrice" bson:"costPrice"`
	Category     string             `json:"category" bson:"category" index:"single"`
	Quantity     int64              `json:"quantity" bson:"quantity"`
	SellerID     primitive.ObjectID `json:"sellerId" bson:"sellerId" index:"single"`
	FreeShipping bool               `json:"freeShipping" bson:"freeShipping"`
	Tags         []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	InStock      bool               `json:"inStock" bson:"inStock" default:"true"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}

// ProductProfitability là kết quả phân tích lợi nhuận của một sản phẩm.
// MarginDefined = false khi price = 0 (margin không xác định, báo cáo là 0).
type ProductProfitability struct {
	ProductID      primitive.ObjectID `json:"productId"`
	Name           string             `json:"name"`
	Price          int64              `json:"price"`
	CostPrice      int64              `json:"costPrice"`
	GrossProfit    int64              `json:"grossProfit"`
	ProfitMargin   float64            `json:"profitMargin"`
	MarginDefined  bool               `json:"marginDefined"`
	MarginCategory string             `json:"marginCategory"`
}

// Các category lợi nhuận.
const (
	MarginHigh = "High-Margin"
	MarginLow  = "Low-Margin"
)
