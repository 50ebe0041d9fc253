package reportsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	ordermodels "github.com/sanjeevkuinkel/shopOnly/internal/api/order/models"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/report/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
)

// completedOrdersMatch tạo điều kiện $match cho các pipeline phân tích khách hàng.
// userID nil nghĩa là phân tích trên toàn bộ khách hàng; khác nil thì chỉ
// tính các đơn của đúng user đó.
func completedOrdersMatch(userID *primitive.ObjectID) bson.M {
	match := bson.M{"status": ordermodels.OrderStatusCompleted}
	if userID != nil {
		match["userId"] = *userID
	}
	return match
}

// AnalyzeCustomerSales tách doanh thu theo phân loại khách hàng.
// Dùng customerType đã LƯU trên từng đơn (phân loại tại thời điểm đặt hàng),
// không tính lại từ lịch sử hiện tại, nên tổng hai nhóm luôn bằng tổng doanh thu.
// userID nil: toàn hệ thống; khác nil: chỉ đơn của user đó.
func (s *ReportService) AnalyzeCustomerSales(ctx context.Context, userID *primitive.ObjectID) (*models.CustomerSalesAnalysis, error) {
	pipeline := []bson.M{
		{"$match": completedOrdersMatch(userID)},
		{"$group": bson.M{
			"_id":     "$customerType",
			"revenue": bson.M{"$sum": "$total"},
			"orders":  bson.M{"$sum": 1},
		}},
	}

	var rows []struct {
		CustomerType string `bson:"_id"`
		Revenue      int64  `bson:"revenue"`
		Orders       int64  `bson:"orders"`
	}
	if err := s.orders.Aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}

	analysis := &models.CustomerSalesAnalysis{}
	for _, row := range rows {
		switch row.CustomerType {
		case ordermodels.CustomerTypeNew:
			analysis.NewCustomerRevenue = row.Revenue
			analysis.NewCustomerOrders = row.Orders
		case ordermodels.CustomerTypeRepeat:
			analysis.RepeatCustomerRevenue = row.Revenue
			analysis.RepeatCustomerOrders = row.Orders
		}
		analysis.TotalRevenue += row.Revenue
		analysis.TotalOrders += row.Orders
	}
	return analysis, nil
}

// AnalyzeTopCustomerSegments thống kê doanh thu theo location của khách hàng,
// sắp theo doanh thu giảm dần, tối đa 10 phân khúc.
// userID nil: toàn hệ thống; khác nil: chỉ đơn của user đó.
func (s *ReportService) AnalyzeTopCustomerSegments(ctx context.Context, userID *primitive.ObjectID) ([]models.SegmentSales, error) {
	pipeline := []bson.M{
		{"$match": completedOrdersMatch(userID)},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "customer",
		}},
		{"$unwind": "$customer"},
		{"$group": bson.M{
			"_id":       bson.M{"$ifNull": []interface{}{"$customer.location", "unknown"}},
			"revenue":   bson.M{"$sum": "$total"},
			"orders":    bson.M{"$sum": 1},
			"customers": bson.M{"$addToSet": "$userId"},
		}},
		{"$project": bson.M{
			"revenue":   1,
			"orders":    1,
			"customers": bson.M{"$size": "$customers"},
		}},
		{"$sort": bson.M{"revenue": -1}},
		{"$limit": 10},
	}

	var segments []models.SegmentSales
	if err := s.orders.Aggregate(ctx, pipeline, &segments); err != nil {
		return nil, err
	}
	if segments == nil {
		segments = []models.SegmentSales{}
	}
	return segments, nil
}
