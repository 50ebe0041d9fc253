package basesvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
)

// RelationshipCheck định nghĩa một quan hệ cần kiểm tra trước khi xóa record.
type RelationshipCheck struct {
	CollectionName string // Tên collection chứa record tham chiếu
	FieldName      string // Tên field chứa ObjectID tham chiếu
	ErrorMessage   string // Thông báo lỗi (có thể chứa %d cho số lượng record)
	Optional       bool   // true: bỏ qua nếu collection chưa được đăng ký
}

// CheckRelationshipExists kiểm tra xem có record nào trong các collection khác
// đang trỏ tới record này không. Trả về lỗi 409 nếu còn tham chiếu.
func CheckRelationshipExists(ctx context.Context, recordID primitive.ObjectID, checks []RelationshipCheck) error {
	for _, check := range checks {
		collection, exists := global.RegistryCollections.Get(check.CollectionName)
		if !exists {
			if check.Optional {
				continue
			}
			return common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Không tìm thấy collection '%s' để kiểm tra quan hệ", check.CollectionName),
				common.StatusInternalServerError,
				nil,
			)
		}

		count, err := collection.CountDocuments(ctx, bson.M{check.FieldName: recordID})
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if count > 0 {
			errorMsg := check.ErrorMessage
			if errorMsg == "" {
				errorMsg = fmt.Sprintf("Không thể xóa vì có %d record trong collection '%s' đang tham chiếu tới record này", count, check.CollectionName)
			} else {
				errorMsg = fmt.Sprintf(check.ErrorMessage, count)
			}
			return common.NewError(common.ErrCodeDatabaseQuery, errorMsg, common.StatusConflict, nil)
		}
	}
	return nil
}

// GetRelationshipCount trả về số lượng record đang tham chiếu tới record này.
func GetRelationshipCount(ctx context.Context, recordID primitive.ObjectID, collectionName, fieldName string) (int64, error) {
	collection, exists := global.RegistryCollections.Get(collectionName)
	if !exists {
		return 0, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Không tìm thấy collection '%s'", collectionName), common.StatusInternalServerError, nil)
	}
	return collection.CountDocuments(ctx, bson.M{fieldName: recordID})
}

// ValidateBeforeDeleteProduct kiểm tra các quan hệ của Product trước khi xóa.
// Sản phẩm còn nằm trong giỏ hàng thì không được xóa; đơn hàng đã chốt giữ
// bản snapshot riêng nên không chặn.
func ValidateBeforeDeleteProduct(ctx context.Context, productID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{
			CollectionName: global.MongoDB_ColNames.CartItems,
			FieldName:      "productId",
			ErrorMessage:   "Không thể xóa sản phẩm vì đang nằm trong %d giỏ hàng. Vui lòng thử lại sau.",
		},
	}
	return CheckRelationshipExists(ctx, productID, checks)
}
