// Package models - model lịch gửi báo cáo định kỳ (ScheduledReport).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tần suất gửi báo cáo.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// ScheduledReport là một đăng ký nhận báo cáo định kỳ qua email.
// Worker quét các lịch isActive = true có nextRun <= now, sinh báo cáo,
// gửi email rồi dời nextRun theo tần suất.
type ScheduledReport struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId" index:"single"`
	ReportType string             `json:"reportType" bson:"reportType"`
	Frequency  string             `json:"frequency" bson:"frequency"`
	Email      string             `json:"email" bson:"email"`
	IsActive   bool               `json:"isActive" bson:"isActive" default:"true"`
	LastSent   int64              `json:"lastSent,omitempty" bson:"lastSent,omitempty"`
	NextRun    int64              `json:"nextRun" bson:"nextRun" index:"single"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}
