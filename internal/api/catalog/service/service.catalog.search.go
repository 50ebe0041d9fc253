// Package catalogsvc - service nhật ký tìm kiếm (SearchLog).
package catalogsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/models"
	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
	"github.com/sanjeevkuinkel/shopOnly/internal/logger"
)

// SearchLogService quản lý nhật ký tìm kiếm sản phẩm.
type SearchLogService struct {
	*basesvc.BaseServiceMongoImpl[models.SearchLog]
}

// NewSearchLogService tạo mới SearchLogService
func NewSearchLogService() (*SearchLogService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.SearchLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get search_logs collection: %v", common.ErrNotFound)
	}
	return &SearchLogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.SearchLog](collection),
	}, nil
}

// LogSearch ghi lại một lượt tìm kiếm. Luôn được gọi cho MỌI lượt tìm kiếm,
// kể cả khi không có kết quả. Lỗi ghi log không chặn flow tìm kiếm.
func (s *SearchLogService) LogSearch(ctx context.Context, term string, userID *primitive.ObjectID, role string) {
	if role == "" {
		role = models.RoleGuest
	}
	_, err := s.BaseServiceMongoImpl.InsertOne(ctx, models.SearchLog{
		Term:   term,
		UserID: userID,
		Role:   role,
	})
	if err != nil {
		logger.GetAppLogger().Warnf("Không thể ghi nhật ký tìm kiếm (term=%q): %v", term, err)
	}
}

// TopSearchedTerms thống kê tối đa 10 từ khóa được tìm nhiều nhất trong khoảng
// thời gian [start, end], tùy chọn lọc theo role.
// Pipeline: match window (+role) → group theo term, đếm → sort giảm dần → limit 10.
func (s *SearchLogService) TopSearchedTerms(ctx context.Context, start, end time.Time, role string) ([]models.TermCount, error) {
	match := bson.M{
		"createdAt": bson.M{
			"$gte": start.UnixMilli(),
			"$lte": end.UnixMilli(),
		},
	}
	if role != "" {
		match["role"] = role
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   "$term",
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": 10},
	}

	var results []models.TermCount
	if err := s.BaseServiceMongoImpl.Aggregate(ctx, pipeline, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.TermCount{}
	}
	return results, nil
}
