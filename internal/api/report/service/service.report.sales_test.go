// Package reportsvc - test các hàm thuần của báo cáo doanh thu:
// accumulator, phạm vi seller, gom theo tháng, ParseMonth, FormatGrowth.
package reportsvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	catalogmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/models"
	ordermodels "github.com/sanjeevkuinkel/shopOnly/internal/api/order/models"
)

func makeOrder(items ...ordermodels.OrderItem) ordermodels.Order {
	var total int64
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	return ordermodels.Order{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Items:  items,
		Total:  total,
		Status: ordermodels.OrderStatusCompleted,
	}
}

func TestAccumulator_SumsRevenueOrdersItems(t *testing.T) {
	productA := primitive.NewObjectID()
	productB := primitive.NewObjectID()

	acc := newAccumulator()
	acc.add(makeOrder(
		ordermodels.OrderItem{ProductID: productA, Name: "Áo thun", Quantity: 2, Price: 100},
		ordermodels.OrderItem{ProductID: productB, Name: "Quần jean", Quantity: 1, Price: 300},
	), nil)
	acc.add(makeOrder(
		ordermodels.OrderItem{ProductID: productA, Name: "Áo thun", Quantity: 3, Price: 100},
	), nil)

	assert.Equal(t, int64(800), acc.revenue)
	assert.Equal(t, int64(2), acc.orders)
	assert.Equal(t, int64(6), acc.items)
}

func TestAccumulator_AllowedSetFiltersLines(t *testing.T) {
	owned := primitive.NewObjectID()
	other := primitive.NewObjectID()
	allowed := map[primitive.ObjectID]bool{owned: true}

	acc := newAccumulator()
	// Đơn có cả dòng được phép và dòng ngoài phạm vi: chỉ tính dòng được phép
	acc.add(makeOrder(
		ordermodels.OrderItem{ProductID: owned, Name: "Của seller", Quantity: 1, Price: 50},
		ordermodels.OrderItem{ProductID: other, Name: "Của người khác", Quantity: 10, Price: 999},
	), allowed)
	// Đơn không có dòng nào được phép: không đếm đơn
	acc.add(makeOrder(
		ordermodels.OrderItem{ProductID: other, Name: "Của người khác", Quantity: 1, Price: 10},
	), allowed)

	assert.Equal(t, int64(50), acc.revenue)
	assert.Equal(t, int64(1), acc.orders)
	assert.Equal(t, int64(1), acc.items)
}

func TestAccumulator_BreakdownSortedByQuantityDesc(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	acc := newAccumulator()
	acc.add(makeOrder(
		ordermodels.OrderItem{ProductID: a, Name: "A", Quantity: 1, Price: 10},
		ordermodels.OrderItem{ProductID: b, Name: "B", Quantity: 5, Price: 10},
		ordermodels.OrderItem{ProductID: c, Name: "C", Quantity: 3, Price: 10},
	), nil)

	breakdown := acc.breakdown(0)
	require.Len(t, breakdown, 3)
	assert.Equal(t, "B", breakdown[0].Name)
	assert.Equal(t, "C", breakdown[1].Name)
	assert.Equal(t, "A", breakdown[2].Name)
}

func TestAccumulator_BreakdownTiebreakByName(t *testing.T) {
	// Cùng số lượng: sắp theo tên để kết quả ổn định giữa các lần chạy
	acc := newAccumulator()
	acc.add(makeOrder(
		ordermodels.OrderItem{ProductID: primitive.NewObjectID(), Name: "Zebra", Quantity: 2, Price: 10},
		ordermodels.OrderItem{ProductID: primitive.NewObjectID(), Name: "Alpha", Quantity: 2, Price: 10},
	), nil)

	breakdown := acc.breakdown(0)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Alpha", breakdown[0].Name)
	assert.Equal(t, "Zebra", breakdown[1].Name)
}

func TestAccumulator_BreakdownLimit(t *testing.T) {
	acc := newAccumulator()
	items := make([]ordermodels.OrderItem, 0, 15)
	for i := 0; i < 15; i++ {
		items = append(items, ordermodels.OrderItem{
			ProductID: primitive.NewObjectID(),
			Name:      "SP",
			Quantity:  int64(i + 1),
			Price:     10,
		})
	}
	acc.add(makeOrder(items...), nil)

	assert.Len(t, acc.breakdown(10), 10)
	assert.Len(t, acc.breakdown(0), 15)
}

func TestSellerScope_NoProductsShortCircuits(t *testing.T) {
	// Seller chưa có sản phẩm nào: chắc chắn báo cáo rỗng, không truy vấn đơn hàng
	_, _, shortCircuit := sellerScope(nil, nil)
	assert.True(t, shortCircuit)
}

func TestSellerScope_ForeignProductShortCircuits(t *testing.T) {
	owned := catalogmodels.Product{ID: primitive.NewObjectID()}
	foreign := primitive.NewObjectID()

	_, _, shortCircuit := sellerScope([]catalogmodels.Product{owned}, &foreign)
	assert.True(t, shortCircuit)
}

func TestSellerScope_OwnedProductFilter(t *testing.T) {
	owned := catalogmodels.Product{ID: primitive.NewObjectID()}
	other := catalogmodels.Product{ID: primitive.NewObjectID()}

	filter, allowed, shortCircuit := sellerScope([]catalogmodels.Product{owned, other}, &owned.ID)
	require.False(t, shortCircuit)
	assert.True(t, allowed[owned.ID])
	assert.False(t, allowed[other.ID])

	// Điều kiện sản phẩm nằm trong MỘT $elemMatch duy nhất
	elemMatch := filter["items"].(bson.M)["$elemMatch"].(bson.M)
	assert.Equal(t, owned.ID, elemMatch["productId"])
}

func TestSellerScope_AllOwnedProducts(t *testing.T) {
	a := catalogmodels.Product{ID: primitive.NewObjectID()}
	b := catalogmodels.Product{ID: primitive.NewObjectID()}

	filter, allowed, shortCircuit := sellerScope([]catalogmodels.Product{a, b}, nil)
	require.False(t, shortCircuit)
	assert.Len(t, allowed, 2)
	assert.True(t, allowed[a.ID])
	assert.True(t, allowed[b.ID])

	elemMatch := filter["items"].(bson.M)["$elemMatch"].(bson.M)
	ids := elemMatch["productId"].(bson.M)["$in"].([]primitive.ObjectID)
	assert.Len(t, ids, 2)
}

func TestBucketByMonth_RevenueAndProductQuantities(t *testing.T) {
	jan := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC).UnixMilli()
	feb := time.Date(2024, time.February, 3, 8, 0, 0, 0, time.UTC).UnixMilli()

	shirt := primitive.NewObjectID()
	jeans := primitive.NewObjectID()

	orderJan := makeOrder(
		ordermodels.OrderItem{ProductID: shirt, Name: "Áo thun", Quantity: 2, Price: 100},
		ordermodels.OrderItem{ProductID: jeans, Name: "Quần jean", Quantity: 1, Price: 300},
	)
	orderJan.CreatedAt = jan
	orderFeb := makeOrder(
		ordermodels.OrderItem{ProductID: shirt, Name: "Áo thun", Quantity: 4, Price: 100},
	)
	orderFeb.CreatedAt = feb

	buckets := bucketByMonth([]ordermodels.Order{orderJan, orderFeb}, 1, 12, nil)
	require.Len(t, buckets, 12)

	assert.Equal(t, int64(500), buckets[1].revenue)
	assert.Equal(t, int64(1), buckets[1].orders)
	assert.Equal(t, map[string]int64{"Áo thun": 2, "Quần jean": 1}, buckets[1].products)

	assert.Equal(t, int64(400), buckets[2].revenue)
	assert.Equal(t, map[string]int64{"Áo thun": 4}, buckets[2].products)

	// Tháng không có đơn vẫn có bucket rỗng
	assert.Equal(t, int64(0), buckets[3].revenue)
	assert.Empty(t, buckets[3].products)
}

func TestBucketByMonth_AllowedSetFiltersProducts(t *testing.T) {
	owned := primitive.NewObjectID()
	other := primitive.NewObjectID()

	order := makeOrder(
		ordermodels.OrderItem{ProductID: owned, Name: "Của seller", Quantity: 3, Price: 50},
		ordermodels.OrderItem{ProductID: other, Name: "Của người khác", Quantity: 9, Price: 999},
	)
	order.CreatedAt = time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC).UnixMilli()

	buckets := bucketByMonth([]ordermodels.Order{order}, 5, 5, map[primitive.ObjectID]bool{owned: true})
	assert.Equal(t, int64(150), buckets[5].revenue)
	assert.Equal(t, map[string]int64{"Của seller": 3}, buckets[5].products)
}

func TestSearchLogRoleFilter(t *testing.T) {
	// Báo cáo của seller chỉ tính lượt tìm kiếm từ seller
	assert.Equal(t, authmodels.RoleSeller, searchLogRoleFilter(authmodels.RoleSeller))

	// Các vai trò khác thấy toàn bộ lượt tìm kiếm
	assert.Equal(t, "", searchLogRoleFilter(authmodels.RoleAdmin))
	assert.Equal(t, "", searchLogRoleFilter(authmodels.RoleBuyer))
	assert.Equal(t, "", searchLogRoleFilter(""))
}

func TestCompletedOrdersMatch(t *testing.T) {
	// Không chỉ định user: phân tích toàn bộ khách hàng
	match := completedOrdersMatch(nil)
	assert.Equal(t, bson.M{"status": ordermodels.OrderStatusCompleted}, match)

	// Chỉ định user: chỉ tính đơn của đúng user đó
	userID := primitive.NewObjectID()
	match = completedOrdersMatch(&userID)
	assert.Equal(t, ordermodels.OrderStatusCompleted, match["status"])
	assert.Equal(t, userID, match["userId"])
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		spec    string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"1", 1, false},
		{"12", 12, false},
		{"0", 0, true},
		{"13", 0, true},
		{"-3", 0, true},
		{"January", 1, false},
		{"january", 1, false},
		{"JAN", 1, false},
		{"dec", 12, false},
		{"December", 12, false},
		{"  March ", 3, false},
		{"Tháng Ba", 0, true},
		{"janx", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseMonth(tc.spec)
		if tc.wantErr {
			assert.Error(t, err, "spec=%q", tc.spec)
			continue
		}
		require.NoError(t, err, "spec=%q", tc.spec)
		assert.Equal(t, tc.want, got, "spec=%q", tc.spec)
	}
}

func TestFormatGrowth(t *testing.T) {
	// Tăng trưởng bình thường
	assert.Equal(t, "100.00%", FormatGrowth(200, 100))
	assert.Equal(t, "-50.00%", FormatGrowth(50, 100))
	assert.Equal(t, "0.00%", FormatGrowth(100, 100))
	assert.Equal(t, "12.34%", FormatGrowth(11234, 10000))

	// compare = 0: mẫu số thay bằng 1, kết quả vẫn xác định
	assert.Equal(t, "500.00%", FormatGrowth(5, 0))
	assert.Equal(t, "0.00%", FormatGrowth(0, 0))
}
