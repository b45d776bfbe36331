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
	"you_education/internal/mindmap"
)

// MindMapService là cấu trúc chứa các phương thức liên quan đến sơ đồ tư duy.
// Service này đồng thời là kho lưu sơ đồ của pipeline sinh nội dung.
type MindMapService struct {
	*basesvc.BaseServiceMongoImpl[models.MindMap]
}

// NewMindMapService tạo mới MindMapService
func NewMindMapService() (*MindMapService, error) {
	mindMapCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.MindMaps)
	if !exist {
		return nil, fmt.Errorf("failed to get mind_maps collection: %v", common.ErrNotFound)
	}

	return &MindMapService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.MindMap](mindMapCollection),
	}, nil
}

// MindMapExists kiểm tra chương đã có sơ đồ tư duy chưa
func (s *MindMapService) MindMapExists(ctx context.Context, chapterID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(chapterID)
	if err != nil {
		return false, fmt.Errorf("chapterId không hợp lệ: %w", common.ErrInvalidFormat)
	}
	return s.DocumentExists(ctx, bson.M{"chapterId": oid})
}

// CreateMindMap lưu sơ đồ đã hoàn thiện cho một chương và trả về hex id.
// Index unique trên chapterId chặn ghi trùng khi hai tiến trình đua nhau.
func (s *MindMapService) CreateMindMap(ctx context.Context, chapterID string, root *mindmap.Node) (string, error) {
	oid, err := primitive.ObjectIDFromHex(chapterID)
	if err != nil {
		return "", fmt.Errorf("chapterId không hợp lệ: %w", common.ErrInvalidFormat)
	}

	doc, err := s.InsertOne(ctx, models.MindMap{
		ChapterID: oid,
		Content:   *root,
	})
	if err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}
