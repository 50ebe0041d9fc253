// Package authsvc - service nhật ký hoạt động người dùng.
package authsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
	"github.com/sanjeevkuinkel/shopOnly/internal/logger"
)

// UserActivityLogService quản lý nhật ký hoạt động của người dùng.
type UserActivityLogService struct {
	*basesvc.BaseServiceMongoImpl[models.UserActivityLog]
}

// NewUserActivityLogService tạo mới UserActivityLogService
func NewUserActivityLogService() (*UserActivityLogService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.UserActivityLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get user_activity_logs collection: %v", common.ErrNotFound)
	}
	return &UserActivityLogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.UserActivityLog](collection),
	}, nil
}

// Log ghi một hoạt động của người dùng. Lỗi ghi log không được chặn flow chính,
// chỉ ghi vào app log.
func (s *UserActivityLogService) Log(ctx context.Context, userID primitive.ObjectID, activityType string, details string) {
	_, err := s.BaseServiceMongoImpl.InsertOne(ctx, models.UserActivityLog{
		UserID:       userID,
		ActivityType: activityType,
		Details:      details,
	})
	if err != nil {
		logger.GetAppLogger().Warnf("Không thể ghi nhật ký hoạt động (user=%s, type=%s): %v", userID.Hex(), activityType, err)
	}
}

// RecentActivity trả về các hoạt động gần nhất của người dùng (mới nhất trước)
// cùng tổng số hoạt động đã ghi nhận.
func (s *UserActivityLogService) RecentActivity(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.UserActivityLog, int64, error) {
	filter := bson.M{"userId": userID}

	total, err := s.BaseServiceMongoImpl.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	logs, err := s.BaseServiceMongoImpl.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
