package eduhdl

import (
	"fmt"

	basehdl "you_education/internal/api/base/handler"
	edudto "you_education/internal/api/education/dto"
	models "you_education/internal/api/education/models"
	edusvc "you_education/internal/api/education/service"
)

// ChapterHandler xử lý các route liên quan đến chương học
type ChapterHandler struct {
	*basehdl.BaseHandler[models.Chapter, edudto.ChapterCreateInput, edudto.ChapterUpdateInput]
	ChapterService *edusvc.ChapterService
}

// NewChapterHandler tạo instance mới của ChapterHandler
func NewChapterHandler() (*ChapterHandler, error) {
	chapterService, err := edusvc.NewChapterService()
	if err != nil {
		return nil, fmt.Errorf("failed to create chapter service: %v", err)
	}
	return &ChapterHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Chapter, edudto.ChapterCreateInput, edudto.ChapterUpdateInput](chapterService),
		ChapterService: chapterService,
	}, nil
}
