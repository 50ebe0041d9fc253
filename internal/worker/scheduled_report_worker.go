package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	reportsvc "github.com/sanjeevkuinkel/shopOnly/internal/api/report/service"
	schedulesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/schedule/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
	"github.com/sanjeevkuinkel/shopOnly/internal/logger"
)

// EmailDispatcher gửi email báo cáo. Tách interface để test thay bằng sender giả.
type EmailDispatcher interface {
	Send(recipient, subject, body string, attachments ...string) error
}

// ScheduledReportWorker quét các lịch báo cáo đến hạn (isActive = true,
// nextRun <= now), sinh báo cáo, gửi email rồi dời nextRun theo tần suất.
// Mỗi lịch lỗi được ghi log và bỏ qua, không chặn các lịch còn lại.
type ScheduledReportWorker struct {
	scheduleService *schedulesvc.ScheduledReportService
	reportService   *reportsvc.ReportService
	users           *basesvc.BaseServiceMongoImpl[authmodels.User]
	sender          EmailDispatcher
	interval        time.Duration
	now             func() time.Time

	mu sync.Mutex // chống chồng lấn giữa các tick khi một vòng chạy quá lâu
}

// NewScheduledReportWorker tạo mới ScheduledReportWorker.
// Tham số:
//   - sender: kênh gửi email
//   - interval: khoảng thời gian giữa các lần quét (tối thiểu 10 giây)
//   - now: nguồn thời gian, nil thì dùng time.Now (test tiêm clock giả)
func NewScheduledReportWorker(sender EmailDispatcher, interval time.Duration, now func() time.Time) (*ScheduledReportWorker, error) {
	scheduleService, err := schedulesvc.NewScheduledReportService()
	if err != nil {
		return nil, err
	}
	reportService, err := reportsvc.NewReportService()
	if err != nil {
		return nil, err
	}
	userCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	if interval < 10*time.Second {
		interval = time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &ScheduledReportWorker{
		scheduleService: scheduleService,
		reportService:   reportService,
		users:           basesvc.NewBaseServiceMongo[authmodels.User](userCol),
		sender:          sender,
		interval:        interval,
		now:             now,
	}, nil
}

// Start chạy worker trong vòng lặp cho tới khi ctx bị hủy.
func (w *ScheduledReportWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("📨 [SCHEDULED_REPORT] Starting Scheduled Report Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("📨 [SCHEDULED_REPORT] Scheduled Report Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("📨 [SCHEDULED_REPORT] Panic khi gửi báo cáo định kỳ, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()
				w.RunOnce(ctx)
			}()
		}
	}
}

// RunOnce xử lý một vòng quét: tìm các lịch đến hạn, sinh và gửi từng báo cáo.
// Trả về số lịch gửi thành công. Nếu vòng trước còn đang chạy thì bỏ qua.
func (w *ScheduledReportWorker) RunOnce(ctx context.Context) int {
	log := logger.GetAppLogger()

	if !w.mu.TryLock() {
		log.Warn("📨 [SCHEDULED_REPORT] Vòng quét trước chưa xong, bỏ qua tick này")
		return 0
	}
	defer w.mu.Unlock()

	now := w.now()
	due, err := w.scheduleService.FindDue(ctx, now)
	if err != nil {
		log.WithError(err).Error("📨 [SCHEDULED_REPORT] Lỗi lấy danh sách lịch đến hạn")
		return 0
	}
	if len(due) == 0 {
		return 0
	}

	sent := 0
	for _, schedule := range due {
		owner, err := w.users.FindOneById(ctx, schedule.UserID)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"scheduleId": schedule.ID.Hex(),
				"userId":     schedule.UserID.Hex(),
			}).Warn("📨 [SCHEDULED_REPORT] Không tìm thấy chủ lịch, bỏ qua")
			continue
		}

		subject, body, err := w.reportService.GenerateScheduled(ctx, schedule.ReportType, owner.Role, schedule.UserID, now)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"scheduleId": schedule.ID.Hex(),
				"reportType": schedule.ReportType,
			}).Warn("📨 [SCHEDULED_REPORT] Sinh báo cáo thất bại, sẽ thử lại lần sau")
			continue
		}

		if err := w.sender.Send(schedule.Email, subject, body); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"scheduleId": schedule.ID.Hex(),
				"email":      schedule.Email,
			}).Warn("📨 [SCHEDULED_REPORT] Gửi email thất bại, sẽ thử lại lần sau")
			continue
		}

		if err := w.scheduleService.MarkSent(ctx, schedule, now); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"scheduleId": schedule.ID.Hex(),
			}).Warn("📨 [SCHEDULED_REPORT] Cập nhật nextRun thất bại")
			continue
		}
		sent++
	}

	if sent > 0 {
		log.WithFields(map[string]interface{}{
			"sent":  sent,
			"total": len(due),
		}).Info("📨 [SCHEDULED_REPORT] Đã gửi báo cáo định kỳ")
	}
	return sent
}
