package scheduledto

// ScheduleCreateInput đầu vào đăng ký lịch gửi báo cáo.
type ScheduleCreateInput struct {
	ReportType string `json:"reportType" validate:"required,oneof=sales inventory userActivity customerAnalysis"`
	Frequency  string `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	Email      string `json:"email" validate:"required,email"`
}

// ScheduleUpdateInput đầu vào cập nhật lịch gửi báo cáo.
// IsActive dùng con trỏ để phân biệt "không đổi" với "tắt lịch".
type ScheduleUpdateInput struct {
	ReportType string `json:"reportType" validate:"omitempty,oneof=sales inventory userActivity customerAnalysis"`
	Frequency  string `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	Email      string `json:"email" validate:"omitempty,email"`
	IsActive   *bool  `json:"isActive"`
}
