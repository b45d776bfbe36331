package edudto

// GenerateMindMapInput đầu vào sinh sơ đồ tư duy cho một chương.
// UserID lấy từ token đăng nhập, không nằm trong body.
type GenerateMindMapInput struct {
	ChapterID    string   `json:"chapterId" validate:"required"`
	ChapterTitle string   `json:"chapterTitle" validate:"required"`
	Topics       []string `json:"topics" validate:"required,min=1,dive,required"`
}

// GenerateQuizInput đầu vào sinh bộ quiz cho một chương đã có sơ đồ tư duy.
type GenerateQuizInput struct {
	ChapterID     string `json:"chapterId" validate:"required"`
	QuestionCount int    `json:"questionCount" validate:"omitempty,min=1,max=50"`
}
