package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"you_education/internal/mindmap"
)

// MindMap định nghĩa sơ đồ tư duy đã hoàn thiện của một chương.
// Mỗi chương chỉ có tối đa một sơ đồ (unique theo chapterId).
type MindMap struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ChapterID primitive.ObjectID `json:"chapterId" bson:"chapterId" index:"unique"`
	Content   mindmap.Node       `json:"content" bson:"content"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
