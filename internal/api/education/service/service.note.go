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

// NoteService là cấu trúc chứa các phương thức liên quan đến ghi chú.
// Ngoài CRUD, service này là kho ghi chú của pipeline sinh sơ đồ
// (tạo placeholder, đọc mô tả, ghi nội dung).
type NoteService struct {
	*basesvc.BaseServiceMongoImpl[models.Note]
}

// NewNoteService tạo mới NoteService
func NewNoteService() (*NoteService, error) {
	noteCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Notes)
	if !exist {
		return nil, fmt.Errorf("failed to get notes collection: %v", common.ErrNotFound)
	}

	return &NoteService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Note](noteCollection),
	}, nil
}

// CreateNote tạo một ghi chú placeholder: chỉ có mô tả, nội dung để null.
// Trả về hex id của bản ghi vừa tạo.
func (s *NoteService) CreateNote(ctx context.Context, description string) (string, error) {
	note, err := s.InsertOne(ctx, models.Note{
		Description: description,
		Content:     nil,
	})
	if err != nil {
		return "", err
	}
	return note.ID.Hex(), nil
}

// NoteDescription đọc mô tả của một ghi chú theo hex id
func (s *NoteService) NoteDescription(ctx context.Context, id string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", fmt.Errorf("note id không hợp lệ: %w", common.ErrInvalidFormat)
	}
	note, err := s.FindOneById(ctx, oid)
	if err != nil {
		return "", err
	}
	return note.Description, nil
}

// UpdateNoteContent ghi nội dung markdown vào ghi chú theo hex id
func (s *NoteService) UpdateNoteContent(ctx context.Context, id string, content string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("note id không hợp lệ: %w", common.ErrInvalidFormat)
	}
	_, err = s.UpdateById(ctx, oid, bson.M{"content": content})
	return err
}
