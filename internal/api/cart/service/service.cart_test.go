// Package cartsvc - test logic cắt số lượng theo tồn kho và snapshot checkout.
package cartsvc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sanjeevkuinkel/shopOnly/internal/api/cart/models"
	catalogmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
)

func TestCapQuantity_WithinStock(t *testing.T) {
	applied, rejected, err := capQuantity(3, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), applied)
	assert.Equal(t, int64(0), rejected)
}

func TestCapQuantity_SilentCapping(t *testing.T) {
	// Tồn kho 5, đang giữ 3: yêu cầu 4 chỉ nhận thêm 2, từ chối 2
	applied, rejected, err := capQuantity(4, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), applied)
	assert.Equal(t, int64(2), rejected)
}

func TestCapQuantity_NothingAddable(t *testing.T) {
	// Đã giữ đủ tồn kho: lỗi CART_001, không cắt ngầm về 0
	_, _, err := capQuantity(1, 5, 5)
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.ErrCodeCartStock.Code, appErr.Code.Code)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
}

func TestCapQuantity_ZeroStock(t *testing.T) {
	_, _, err := capQuantity(1, 0, 0)
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.ErrCodeCartStock.Code, appErr.Code.Code)
}

func TestCapQuantity_InvalidRequest(t *testing.T) {
	_, _, err := capQuantity(0, 5, 0)
	assert.Error(t, err)

	_, _, err = capQuantity(-2, 5, 0)
	assert.Error(t, err)
}

func TestBuildOrderItems_SnapshotAndTotal(t *testing.T) {
	userID := primitive.NewObjectID()
	productA := catalogmodels.Product{ID: primitive.NewObjectID(), Name: "Áo thun", Price: 100, CostPrice: 60}
	productB := catalogmodels.Product{ID: primitive.NewObjectID(), Name: "Quần jean", Price: 300, CostPrice: 180}

	items := []models.CartItem{
		{UserID: userID, ProductID: productA.ID, Quantity: 2},
		{UserID: userID, ProductID: productB.ID, Quantity: 1},
	}

	orderItems, total, err := buildOrderItems(items, []catalogmodels.Product{productA, productB})
	require.NoError(t, err)
	require.Len(t, orderItems, 2)

	// total = Σ(giá × số lượng) = 2×100 + 1×300
	assert.Equal(t, int64(500), total)

	assert.Equal(t, "Áo thun", orderItems[0].Name)
	assert.Equal(t, int64(100), orderItems[0].Price)
	assert.Equal(t, int64(2), orderItems[0].Quantity)

	// Cost là giá vốn của cả dòng: costPrice × số lượng
	assert.Equal(t, int64(120), orderItems[0].Cost)
	assert.Equal(t, int64(180), orderItems[1].Cost)
}

func TestBuildOrderItems_LineCostScalesWithQuantity(t *testing.T) {
	product := catalogmodels.Product{ID: primitive.NewObjectID(), Name: "Ghế xoay", Price: 250, CostPrice: 60}

	for _, quantity := range []int64{1, 2, 5} {
		items := []models.CartItem{{UserID: primitive.NewObjectID(), ProductID: product.ID, Quantity: quantity}}
		orderItems, _, err := buildOrderItems(items, []catalogmodels.Product{product})
		require.NoError(t, err)
		assert.Equal(t, product.CostPrice*quantity, orderItems[0].Cost)
	}
}

func TestBuildOrderItems_SnapshotIndependentOfLaterPriceChange(t *testing.T) {
	product := catalogmodels.Product{ID: primitive.NewObjectID(), Name: "Bàn gỗ", Price: 1000, CostPrice: 700}
	items := []models.CartItem{{UserID: primitive.NewObjectID(), ProductID: product.ID, Quantity: 1}}

	orderItems, total, err := buildOrderItems(items, []catalogmodels.Product{product})
	require.NoError(t, err)

	// Đổi giá trong catalog sau khi snapshot: dòng đơn hàng giữ nguyên giá cũ
	product.Price = 9999
	assert.Equal(t, int64(1000), orderItems[0].Price)
	assert.Equal(t, int64(1000), total)
}

func TestBuildOrderItems_MissingProduct(t *testing.T) {
	items := []models.CartItem{{UserID: primitive.NewObjectID(), ProductID: primitive.NewObjectID(), Quantity: 1}}

	_, _, err := buildOrderItems(items, nil)
	require.Error(t, err)

	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
}

func TestAddItemResult_IncludesFullCart(t *testing.T) {
	userID := primitive.NewObjectID()
	line := models.CartItem{UserID: userID, ProductID: primitive.NewObjectID(), Quantity: 2}
	other := models.CartItem{UserID: userID, ProductID: primitive.NewObjectID(), Quantity: 1}

	// Kết quả thêm vào giỏ trả về cả giỏ hàng, không chỉ dòng vừa cập nhật
	result := models.AddItemResult{Item: line, Cart: []models.CartItem{line, other}, Applied: 2}

	payload, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Contains(t, decoded, "item")
	assert.Contains(t, decoded, "cart")
	assert.Contains(t, decoded, "applied")
	assert.Contains(t, decoded, "rejected")

	var cart []models.CartItem
	require.NoError(t, json.Unmarshal(decoded["cart"], &cart))
	assert.Len(t, cart, 2)
}
