package edudto

// QuizQuestionInput một câu hỏi trong đầu vào tạo quiz thủ công
type QuizQuestionInput struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2"`
	CorrectOption int      `json:"correctOption" validate:"min=0"`
	Explanation   string   `json:"explanation"`
}

// QuizCreateInput đầu vào tạo quiz (CRUD, không qua pipeline).
type QuizCreateInput struct {
	ChapterID string              `json:"chapterId" validate:"required" transform:"str_objectid"`
	Title     string              `json:"title" validate:"required"`
	Questions []QuizQuestionInput `json:"questions" validate:"required,min=1"`
}

// QuizUpdateInput đầu vào cập nhật quiz.
type QuizUpdateInput struct {
	Title     string              `json:"title"`
	Questions []QuizQuestionInput `json:"questions"`
}
