package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chapter định nghĩa một chương học trong môn học.
// MindMapID trỏ tới sơ đồ tư duy đã sinh cho chương (rỗng khi chưa sinh).
type Chapter struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SubjectName string             `json:"subjectName" bson:"subjectName"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Topics      []string           `json:"topics" bson:"topics"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId" index:"single"`
	MindMapID   primitive.ObjectID `json:"mindMapId,omitempty" bson:"mindMapId,omitempty"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
