package eduhdl

import (
	"fmt"

	basehdl "you_education/internal/api/base/handler"
	edudto "you_education/internal/api/education/dto"
	models "you_education/internal/api/education/models"
	edusvc "you_education/internal/api/education/service"
)

// MindMapHandler xử lý các route liên quan đến sơ đồ tư duy
type MindMapHandler struct {
	*basehdl.BaseHandler[models.MindMap, edudto.MindMapCreateInput, edudto.MindMapUpdateInput]
	MindMapService *edusvc.MindMapService
}

// NewMindMapHandler tạo instance mới của MindMapHandler
func NewMindMapHandler() (*MindMapHandler, error) {
	mindMapService, err := edusvc.NewMindMapService()
	if err != nil {
		return nil, fmt.Errorf("failed to create mind map service: %v", err)
	}
	return &MindMapHandler{
		BaseHandler: basehdl.NewBaseHandler[models.MindMap, edudto.MindMapCreateInput, edudto.MindMapUpdateInput](mindMapService),
		MindMapService: mindMapService,
	}, nil
}
