// Package schedulesvc - service quản lý lịch gửi báo cáo định kỳ.
package schedulesvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/schedule/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
)

// ScheduledReportService quản lý các lịch gửi báo cáo.
type ScheduledReportService struct {
	*basesvc.BaseServiceMongoImpl[models.ScheduledReport]
}

// NewScheduledReportService tạo mới ScheduledReportService
func NewScheduledReportService() (*ScheduledReportService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ScheduledReports)
	if !exist {
		return nil, fmt.Errorf("failed to get scheduled_reports collection: %v", common.ErrNotFound)
	}
	return &ScheduledReportService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.ScheduledReport](collection),
	}, nil
}

// NextRunAfter tính thời điểm chạy kế tiếp kể từ from theo tần suất.
// monthly dùng AddDate(0, 1, 0): cuối tháng được Go chuẩn hóa,
// ví dụ 31/1 + 1 tháng = 2/3 hoặc 3/3 tùy năm.
func NextRunAfter(from time.Time, frequency string) (time.Time, error) {
	switch frequency {
	case models.FrequencyDaily:
		return from.AddDate(0, 0, 1), nil
	case models.FrequencyWeekly:
		return from.AddDate(0, 0, 7), nil
	case models.FrequencyMonthly:
		return from.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Tần suất không hợp lệ: %q", frequency), common.StatusBadRequest, nil)
	}
}

// Create đăng ký lịch mới. Lần gửi đầu tiên là một chu kỳ sau thời điểm tạo.
func (s *ScheduledReportService) Create(ctx context.Context, userID primitive.ObjectID, reportType, frequency, email string, now time.Time) (models.ScheduledReport, error) {
	var zero models.ScheduledReport
	nextRun, err := NextRunAfter(now, frequency)
	if err != nil {
		return zero, err
	}
	return s.BaseServiceMongoImpl.InsertOne(ctx, models.ScheduledReport{
		UserID:     userID,
		ReportType: reportType,
		Frequency:  frequency,
		Email:      email,
		IsActive:   true,
		NextRun:    nextRun.UnixMilli(),
	})
}

// FindDue trả về các lịch đang bật đã đến hạn gửi tại thời điểm now.
func (s *ScheduledReportService) FindDue(ctx context.Context, now time.Time) ([]models.ScheduledReport, error) {
	return s.BaseServiceMongoImpl.Find(ctx, bson.M{
		"isActive": true,
		"nextRun":  bson.M{"$lte": now.UnixMilli()},
	}, nil)
}

// MarkSent ghi nhận đã gửi thành công: cập nhật lastSent và dời nextRun
// thêm một chu kỳ tính từ thời điểm gửi.
func (s *ScheduledReportService) MarkSent(ctx context.Context, schedule models.ScheduledReport, sentAt time.Time) error {
	nextRun, err := NextRunAfter(sentAt, schedule.Frequency)
	if err != nil {
		return err
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, schedule.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"lastSent": sentAt.UnixMilli(),
			"nextRun":  nextRun.UnixMilli(),
		},
	})
	return err
}

// ListByUser trả về toàn bộ lịch của một user.
func (s *ScheduledReportService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.ScheduledReport, error) {
	schedules, err := s.BaseServiceMongoImpl.Find(ctx, bson.M{"userId": userID}, nil)
	if err != nil {
		return nil, err
	}
	if schedules == nil {
		schedules = []models.ScheduledReport{}
	}
	return schedules, nil
}

// GetForUser lấy một lịch, đảm bảo lịch thuộc về user.
func (s *ScheduledReportService) GetForUser(ctx context.Context, scheduleID, userID primitive.ObjectID) (models.ScheduledReport, error) {
	return s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"_id": scheduleID, "userId": userID}, nil)
}
