// Package schedulesvc - test tính toán chu kỳ gửi báo cáo.
package schedulesvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/sanjeevkuinkel/shopOnly/internal/api/schedule/models"
)

func TestNextRunAfter_Daily(t *testing.T) {
	from := time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)
	next, err := NextRunAfter(from, models.FrequencyDaily)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 16, 8, 30, 0, 0, time.UTC), next)
}

func TestNextRunAfter_Weekly(t *testing.T) {
	from := time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)
	next, err := NextRunAfter(from, models.FrequencyWeekly)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 22, 8, 30, 0, 0, time.UTC), next)
}

func TestNextRunAfter_Monthly(t *testing.T) {
	from := time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)
	next, err := NextRunAfter(from, models.FrequencyMonthly)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 15, 8, 30, 0, 0, time.UTC), next)
}

func TestNextRunAfter_MonthlyEndOfMonthNormalized(t *testing.T) {
	// 31/1 + 1 tháng: Go chuẩn hóa thành 2/3 (năm nhuận 2024 tháng 2 có 29 ngày)
	from := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	next, err := NextRunAfter(from, models.FrequencyMonthly)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), next)
}

func TestNextRunAfter_InvalidFrequency(t *testing.T) {
	_, err := NextRunAfter(time.Now(), "hourly")
	assert.Error(t, err)

	_, err = NextRunAfter(time.Now(), "")
	assert.Error(t, err)
}
