// Package basesvc - test chuyển đổi dữ liệu update sang UpdateData.
package basesvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToUpdateData_PassthroughPointer(t *testing.T) {
	original := &UpdateData{Set: map[string]interface{}{"name": "x"}}
	got, err := ToUpdateData(original)
	require.NoError(t, err)
	assert.Same(t, original, got)
}

func TestToUpdateData_PlainMapWrappedInSet(t *testing.T) {
	got, err := ToUpdateData(bson.M{"name": "áo thun", "quantity": int64(5)})
	require.NoError(t, err)
	require.NotNil(t, got.Set)
	assert.Equal(t, "áo thun", got.Set["name"])
	assert.Equal(t, int64(5), got.Set["quantity"])
	assert.Nil(t, got.Inc)
	assert.Nil(t, got.Unset)
}

func TestToUpdateData_ValuePassthrough(t *testing.T) {
	got, err := ToUpdateData(UpdateData{Inc: map[string]interface{}{"quantity": int64(1)}})
	require.NoError(t, err)
	require.NotNil(t, got.Inc)
	assert.Equal(t, int64(1), got.Inc["quantity"])
}

func TestToUpdateData_StructConvertedViaBsonTags(t *testing.T) {
	type patch struct {
		Name     string `bson:"name"`
		Quantity int64  `bson:"quantity"`
	}
	got, err := ToUpdateData(patch{Name: "bàn gỗ", Quantity: 7})
	require.NoError(t, err)
	require.NotNil(t, got.Set)
	assert.Equal(t, "bàn gỗ", got.Set["name"])
	assert.Equal(t, int64(7), got.Set["quantity"])
}
