// Package schedulehdl xử lý các request HTTP cho lịch gửi báo cáo.
package schedulehdl

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/sanjeevkuinkel/shopOnly/internal/api/base/handler"
	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	scheduledto "github.com/sanjeevkuinkel/shopOnly/internal/api/schedule/dto"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/schedule/models"
	schedulesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/schedule/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/logger"
)

// ScheduleHandler xử lý các request lịch gửi báo cáo
type ScheduleHandler struct {
	*basehdl.BaseHandler[models.ScheduledReport, scheduledto.ScheduleCreateInput, scheduledto.ScheduleUpdateInput]
	scheduleService *schedulesvc.ScheduledReportService
}

// NewScheduleHandler tạo instance mới của ScheduleHandler
func NewScheduleHandler() (*ScheduleHandler, error) {
	scheduleService, err := schedulesvc.NewScheduledReportService()
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.ScheduledReport, scheduledto.ScheduleCreateInput, scheduledto.ScheduleUpdateInput](scheduleService)
	return &ScheduleHandler{
		BaseHandler:     baseHandler,
		scheduleService: scheduleService,
	}, nil
}

func (h *ScheduleHandler) callerID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err)
	}
	return objID, nil
}

// HandleCreate đăng ký lịch gửi báo cáo mới cho user hiện tại
func (h *ScheduleHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.callerID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input scheduledto.ScheduleCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		schedule, err := h.scheduleService.Create(c.Context(), userID, input.ReportType, input.Frequency, input.Email, time.Now())
		if err == nil {
			logger.LogAction("schedule_create", c, map[string]interface{}{
				"reportType": input.ReportType,
				"frequency":  input.Frequency,
			})
		}
		h.HandleResponse(c, schedule, err)
		return nil
	})
}

// HandleList liệt kê các lịch của user hiện tại
func (h *ScheduleHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.callerID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		schedules, err := h.scheduleService.ListByUser(c.Context(), userID)
		h.HandleResponse(c, schedules, err)
		return nil
	})
}

// HandleUpdate cập nhật lịch của user hiện tại
func (h *ScheduleHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.callerID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		scheduleID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		// Lịch phải thuộc về chính user
		schedule, err := h.scheduleService.GetForUser(c.Context(), scheduleID, userID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input scheduledto.ScheduleUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		update := &basesvc.UpdateData{Set: map[string]interface{}{}}
		if input.ReportType != "" {
			update.Set["reportType"] = input.ReportType
		}
		if input.Frequency != "" && input.Frequency != schedule.Frequency {
			update.Set["frequency"] = input.Frequency
			// Đổi tần suất thì tính lại nextRun từ bây giờ
			nextRun, err := schedulesvc.NextRunAfter(time.Now(), input.Frequency)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			update.Set["nextRun"] = nextRun.UnixMilli()
		}
		if input.Email != "" {
			update.Set["email"] = input.Email
		}
		if input.IsActive != nil {
			update.Set["isActive"] = *input.IsActive
		}

		updated, err := h.scheduleService.BaseServiceMongoImpl.UpdateById(c.Context(), scheduleID, update)
		h.HandleResponse(c, updated, err)
		return nil
	})
}

// HandleDelete xóa lịch của user hiện tại
func (h *ScheduleHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.callerID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		scheduleID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		err = h.scheduleService.BaseServiceMongoImpl.DeleteOne(c.Context(), map[string]interface{}{
			"_id":    scheduleID,
			"userId": userID,
		})
		h.HandleResponse(c, nil, err)
		return nil
	})
}
