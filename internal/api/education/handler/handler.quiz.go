package eduhdl

import (
	"fmt"

	basehdl "you_education/internal/api/base/handler"
	edudto "you_education/internal/api/education/dto"
	models "you_education/internal/api/education/models"
	edusvc "you_education/internal/api/education/service"
)

// QuizHandler xử lý các route liên quan đến bộ quiz
type QuizHandler struct {
	*basehdl.BaseHandler[models.Quiz, edudto.QuizCreateInput, edudto.QuizUpdateInput]
	QuizService *edusvc.QuizService
}

// NewQuizHandler tạo instance mới của QuizHandler
func NewQuizHandler() (*QuizHandler, error) {
	quizService, err := edusvc.NewQuizService()
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz service: %v", err)
	}
	return &QuizHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Quiz, edudto.QuizCreateInput, edudto.QuizUpdateInput](quizService),
		QuizService: quizService,
	}, nil
}
