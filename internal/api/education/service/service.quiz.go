package edusvc

import (
	"fmt"

	basesvc "you_education/internal/api/base/service"
	models "you_education/internal/api/education/models"
	"you_education/internal/common"
	"you_education/internal/global"
)

// QuizService là cấu trúc chứa các phương thức liên quan đến bộ quiz
type QuizService struct {
	*basesvc.BaseServiceMongoImpl[models.Quiz]
}

// NewQuizService tạo mới QuizService
func NewQuizService() (*QuizService, error) {
	quizCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Quizzes)
	if !exist {
		return nil, fmt.Errorf("failed to get quizzes collection: %v", common.ErrNotFound)
	}

	return &QuizService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Quiz](quizCollection),
	}, nil
}
