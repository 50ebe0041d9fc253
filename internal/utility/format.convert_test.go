package utility

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestP2Int64(t *testing.T) {
	assert.Equal(t, int64(42), P2Int64("42"))
	assert.Equal(t, int64(42), P2Int64(42))
	assert.Equal(t, int64(42), P2Int64(int64(42)))
	assert.Equal(t, int64(42), P2Int64(float64(42)))
	assert.Equal(t, int64(42), P2Int64(json.Number("42")))

	// Không chuyển được: trả về 0
	assert.Equal(t, int64(0), P2Int64("abc"))
	assert.Equal(t, int64(0), P2Int64(nil))
	assert.Equal(t, int64(0), P2Int64(true))
}

func TestP2Float64(t *testing.T) {
	assert.Equal(t, 1.5, P2Float64("1.5"))
	assert.Equal(t, 1.5, P2Float64(1.5))
	assert.Equal(t, 1.5, P2Float64(json.Number("1.5")))
	assert.Equal(t, float64(3), P2Float64(3))

	assert.Equal(t, float64(0), P2Float64("xyz"))
	assert.Equal(t, float64(0), P2Float64(nil))
}

func TestString2ObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, id, String2ObjectID(id.Hex()))

	// Chuỗi không hợp lệ: trả về NilObjectID
	assert.Equal(t, primitive.NilObjectID, String2ObjectID("not-an-id"))
	assert.Equal(t, primitive.NilObjectID, String2ObjectID(""))
}

func TestObjectID2String(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, id.Hex(), ObjectID2String(id))
}
