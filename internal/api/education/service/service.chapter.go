package edusvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "you_education/internal/api/base/service"
	models "you_education/internal/api/education/models"
	"you_education/internal/common"
	"you_education/internal/global"
)

// ChapterService là cấu trúc chứa các phương thức liên quan đến chương học
type ChapterService struct {
	*basesvc.BaseServiceMongoImpl[models.Chapter]
}

// NewChapterService tạo mới ChapterService
func NewChapterService() (*ChapterService, error) {
	chapterCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Chapters)
	if !exist {
		return nil, fmt.Errorf("failed to get chapters collection: %v", common.ErrNotFound)
	}

	return &ChapterService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Chapter](chapterCollection),
	}, nil
}

// LinkMindMap gắn id sơ đồ tư duy vừa tạo vào chương.
// Nhận hex id để pipeline không phụ thuộc kiểu ObjectID.
func (s *ChapterService) LinkMindMap(ctx context.Context, chapterID string, mindMapID string) error {
	chapterOID, err := primitive.ObjectIDFromHex(chapterID)
	if err != nil {
		return fmt.Errorf("chapterId không hợp lệ: %w", common.ErrInvalidFormat)
	}
	mindMapOID, err := primitive.ObjectIDFromHex(mindMapID)
	if err != nil {
		return fmt.Errorf("mindMapId không hợp lệ: %w", common.ErrInvalidFormat)
	}

	_, err = s.UpdateById(ctx, chapterOID, bson.M{"mindMapId": mindMapOID})
	return err
}
