package edudto

// ChapterCreateInput đầu vào tạo chương học (CRUD).
type ChapterCreateInput struct {
	SubjectName string   `json:"subjectName" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Topics      []string `json:"topics" validate:"required,min=1,dive,required"`
	UserID      string   `json:"userId" validate:"required" transform:"str_objectid"`
}

// ChapterUpdateInput đầu vào cập nhật chương học.
type ChapterUpdateInput struct {
	SubjectName string   `json:"subjectName"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
	MindMapID   string   `json:"mindMapId" transform:"str_objectid,optional"`
}
