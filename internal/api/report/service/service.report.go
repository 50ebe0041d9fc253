// Package reportsvc - engine báo cáo bán hàng và phân tích khách hàng.
package reportsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	authsvc "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/service"
	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	catalogmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/models"
	catalogsvc "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/service"
	ordermodels "github.com/sanjeevkuinkel/shopOnly/internal/api/order/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
)

// ReportService tính toán các báo cáo doanh thu từ dữ liệu đơn hàng.
// Báo cáo chỉ tính các đơn status = completed.
type ReportService struct {
	orders          *basesvc.BaseServiceMongoImpl[ordermodels.Order]
	products        *basesvc.BaseServiceMongoImpl[catalogmodels.Product]
	searchLogs      *catalogsvc.SearchLogService
	activityService *authsvc.UserActivityLogService
}

// NewReportService tạo mới ReportService
func NewReportService() (*ReportService, error) {
	orderCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}
	productCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}
	searchLogs, err := catalogsvc.NewSearchLogService()
	if err != nil {
		return nil, err
	}
	activityService, err := authsvc.NewUserActivityLogService()
	if err != nil {
		return nil, err
	}
	return &ReportService{
		orders:          basesvc.NewBaseServiceMongo[ordermodels.Order](orderCol),
		products:        basesvc.NewBaseServiceMongo[catalogmodels.Product](productCol),
		searchLogs:      searchLogs,
		activityService: activityService,
	}, nil
}

// scope xác định phạm vi báo cáo theo vai trò người gọi.
//
// Trả về:
//   - filter: điều kiện lọc đơn hàng (chưa gồm status/thời gian)
//   - allowed: tập productId được tính vào báo cáo; nil nghĩa là mọi sản phẩm
//   - shortCircuit: true khi chắc chắn không có dữ liệu trong phạm vi
//     (seller chưa có sản phẩm nào, hoặc productID chỉ định không thuộc seller);
//     khi đó caller trả báo cáo rỗng mà không cần truy vấn đơn hàng.
//
// Seller chỉ thấy doanh số các sản phẩm mình sở hữu. Điều kiện sản phẩm được
// gộp trong MỘT $elemMatch duy nhất để các ràng buộc áp lên cùng một phần tử
// của mảng items.
func (s *ReportService) scope(ctx context.Context, role string, callerID primitive.ObjectID, productID *primitive.ObjectID) (bson.M, map[primitive.ObjectID]bool, bool, error) {
	if role != authmodels.RoleSeller {
		if productID == nil {
			return bson.M{}, nil, false, nil
		}
		filter := bson.M{"items": bson.M{"$elemMatch": bson.M{"productId": *productID}}}
		return filter, map[primitive.ObjectID]bool{*productID: true}, false, nil
	}

	sellerProducts, err := s.products.Find(ctx, bson.M{"sellerId": callerID}, nil)
	if err != nil {
		return nil, nil, false, err
	}
	filter, allowed, shortCircuit := sellerScope(sellerProducts, productID)
	return filter, allowed, shortCircuit, nil
}

// sellerScope thu hẹp phạm vi báo cáo xuống các sản phẩm seller sở hữu.
// Seller chưa có sản phẩm nào, hoặc chỉ định sản phẩm không thuộc mình,
// là chắc chắn không có dữ liệu → shortCircuit.
func sellerScope(sellerProducts []catalogmodels.Product, productID *primitive.ObjectID) (bson.M, map[primitive.ObjectID]bool, bool) {
	if len(sellerProducts) == 0 {
		return nil, nil, true
	}

	allowed := make(map[primitive.ObjectID]bool, len(sellerProducts))
	ids := make([]primitive.ObjectID, 0, len(sellerProducts))
	for _, p := range sellerProducts {
		allowed[p.ID] = true
		ids = append(ids, p.ID)
	}

	if productID != nil {
		if !allowed[*productID] {
			return nil, nil, true
		}
		filter := bson.M{"items": bson.M{"$elemMatch": bson.M{"productId": *productID}}}
		return filter, map[primitive.ObjectID]bool{*productID: true}, false
	}

	filter := bson.M{"items": bson.M{"$elemMatch": bson.M{"productId": bson.M{"$in": ids}}}}
	return filter, allowed, false
}

// completedInWindow trả về các đơn completed trong [startMs, endMs) khớp scope filter.
func (s *ReportService) completedInWindow(ctx context.Context, scopeFilter bson.M, startMs, endMs int64) ([]ordermodels.Order, error) {
	filter := bson.M{
		"status":    ordermodels.OrderStatusCompleted,
		"createdAt": bson.M{"$gte": startMs, "$lt": endMs},
	}
	for k, v := range scopeFilter {
		filter[k] = v
	}
	return s.orders.Find(ctx, filter, nil)
}
