// Package global - test các custom validator.
package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_NoXSS(t *testing.T) {
	InitValidator()

	assert.NoError(t, Validate.Var("Bàn gỗ sồi cao cấp", "no_xss"))
	assert.NoError(t, Validate.Var("Giảm giá 50% hôm nay", "no_xss"))

	assert.Error(t, Validate.Var("<script>alert(1)</script>", "no_xss"))
	assert.Error(t, Validate.Var("a href=javascript:void(0)", "no_xss"))
	assert.Error(t, Validate.Var("<img onerror=hack()>", "no_xss"))
	assert.Error(t, Validate.Var("<iframe src=x>", "no_xss"))
}

func TestValidator_StrongPassword(t *testing.T) {
	InitValidator()

	// Đạt ít nhất 3/4 điều kiện (hoa, thường, số, ký tự đặc biệt)
	assert.NoError(t, Validate.Var("Abcdef12", "strong_password"))
	assert.NoError(t, Validate.Var("abcdef1!", "strong_password"))
	assert.NoError(t, Validate.Var("MậtKhẩu9@", "strong_password"))

	// Quá ngắn
	assert.Error(t, Validate.Var("Ab1!", "strong_password"))
	// Chỉ chữ thường
	assert.Error(t, Validate.Var("abcdefgh", "strong_password"))
	// Chỉ chữ thường + số (2/4 điều kiện)
	assert.Error(t, Validate.Var("abcdef12", "strong_password"))
}

func TestValidator_NoSQLInjection(t *testing.T) {
	InitValidator()

	assert.NoError(t, Validate.Var("san pham tot", "no_sql_injection"))
	assert.Error(t, Validate.Var("1 OR 1=1", "no_sql_injection"))
	assert.Error(t, Validate.Var("x'; DROP TABLE users", "no_sql_injection"))
}
