// Package ordersvc - test phân loại khách hàng khi ghi đơn.
package ordersvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sanjeevkuinkel/shopOnly/internal/api/order/models"
)

func TestPrepareOrder_FirstOrderIsNew(t *testing.T) {
	order := prepareOrder(models.Order{UserID: primitive.NewObjectID(), Total: 500}, 0)

	assert.Equal(t, models.CustomerTypeNew, order.CustomerType)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
}

func TestPrepareOrder_SecondOrderIsRepeat(t *testing.T) {
	userID := primitive.NewObjectID()

	// Checkout lần 1: chưa có đơn nào → new. Checkout lần 2: đã có 1 đơn → repeat.
	var prior int64
	first := prepareOrder(models.Order{UserID: userID, Total: 300}, prior)
	prior++
	second := prepareOrder(models.Order{UserID: userID, Total: 700}, prior)

	assert.Equal(t, models.CustomerTypeNew, first.CustomerType)
	assert.Equal(t, models.CustomerTypeRepeat, second.CustomerType)
}

func TestPrepareOrder_OverridesIncomingState(t *testing.T) {
	// Phân loại và trạng thái do hệ thống quyết định, không nhận từ input
	order := prepareOrder(models.Order{
		UserID:       primitive.NewObjectID(),
		Status:       models.OrderStatusPending,
		CustomerType: models.CustomerTypeRepeat,
	}, 0)

	assert.Equal(t, models.CustomerTypeNew, order.CustomerType)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
}
