package edudto

import (
	"you_education/internal/mindmap"
)

// MindMapCreateInput đầu vào tạo sơ đồ tư duy trực tiếp (CRUD, không qua pipeline).
type MindMapCreateInput struct {
	ChapterID string       `json:"chapterId" validate:"required" transform:"str_objectid"`
	Content   mindmap.Node `json:"content" validate:"required"`
}

// MindMapUpdateInput đầu vào cập nhật sơ đồ tư duy.
type MindMapUpdateInput struct {
	Content *mindmap.Node `json:"content"`
}
