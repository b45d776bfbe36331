package eduhdl

import (
	"fmt"

	basehdl "you_education/internal/api/base/handler"
	edudto "you_education/internal/api/education/dto"
	models "you_education/internal/api/education/models"
	edusvc "you_education/internal/api/education/service"
)

// NoteHandler xử lý các route liên quan đến ghi chú
type NoteHandler struct {
	*basehdl.BaseHandler[models.Note, edudto.NoteCreateInput, edudto.NoteUpdateInput]
	NoteService *edusvc.NoteService
}

// NewNoteHandler tạo instance mới của NoteHandler
func NewNoteHandler() (*NoteHandler, error) {
	noteService, err := edusvc.NewNoteService()
	if err != nil {
		return nil, fmt.Errorf("failed to create note service: %v", err)
	}
	return &NoteHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Note, edudto.NoteCreateInput, edudto.NoteUpdateInput](noteService),
		NoteService: noteService,
	}, nil
}
