package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note định nghĩa một bài ghi chú được tham chiếu từ node lá của sơ đồ tư duy.
// Content là con trỏ: nil nghĩa là placeholder chưa sinh nội dung,
// khác nil là markdown đã sinh xong.
type Note struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Description string             `json:"description" bson:"description"`
	Content     *string            `json:"content" bson:"content"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
