package eduhdl

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "you_education/internal/api/base/handler"
	edudto "you_education/internal/api/education/dto"
	models "you_education/internal/api/education/models"
	edusvc "you_education/internal/api/education/service"
	"you_education/internal/common"
	"you_education/internal/logger"
)

// GenerationHandler xử lý các route sinh nội dung: sơ đồ tư duy, quiz
// và trạng thái tiến trình của user hiện tại.
type GenerationHandler struct {
	*basehdl.BaseHandler[models.GenerationStatus, interface{}, interface{}]
	GenerationService *edusvc.GenerationService
}

// NewGenerationHandler tạo instance mới của GenerationHandler.
// Cần context vì service khởi tạo các client Gemini và YouTube.
func NewGenerationHandler(ctx context.Context) (*GenerationHandler, error) {
	generationService, err := edusvc.NewGenerationService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %v", err)
	}
	return &GenerationHandler{
		BaseHandler:       &basehdl.BaseHandler[models.GenerationStatus, interface{}, interface{}]{},
		GenerationService: generationService,
	}, nil
}

// currentUserID lấy user id từ locals do AuthMiddleware gắn vào
func currentUserID(c fiber.Ctx) (string, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return "", common.ErrTokenInvalid
	}
	return userID, nil
}

// HandleGenerateMindMap chạy pipeline sinh sơ đồ tư duy cho một chương
// @Summary Sinh sơ đồ tư duy
// @Description Sinh sơ đồ tư duy cho một chương từ danh sách chủ đề
// @Accept json
// @Produce json
// @Router /education/mind-maps/generate [post]
func (h *GenerationHandler) HandleGenerateMindMap(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(edudto.GenerateMindMapInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.GenerationService.GenerateMindMap(c.Context(), userID, *input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAction("mindmap_generate", c, map[string]interface{}{
			"chapter_id":  input.ChapterID,
			"mind_map_id": result.MindMapID,
			"note_count":  len(result.NoteIDs),
		})

		h.HandleResponse(c, fiber.Map{
			"mindMapId": result.MindMapID,
			"noteIds":   result.NoteIDs,
			"mindMap":   result.Tree,
		}, nil)
		return nil
	})
}

// HandleGenerateQuiz sinh bộ quiz từ ghi chú của một chương
// @Summary Sinh quiz
// @Description Sinh bộ câu hỏi trắc nghiệm từ các ghi chú trong sơ đồ tư duy của chương
// @Accept json
// @Produce json
// @Router /education/quizzes/generate [post]
func (h *GenerationHandler) HandleGenerateQuiz(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(edudto.GenerateQuizInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		quiz, err := h.GenerationService.GenerateQuiz(c.Context(), userID, *input)
		if err == nil {
			logger.LogAction("quiz_generate", c, map[string]interface{}{
				"chapter_id": input.ChapterID,
			})
		}
		h.HandleResponse(c, quiz, err)
		return nil
	})
}

// HandleGenerationStatus trả về trạng thái sinh nội dung của user hiện tại
// @Summary Trạng thái sinh nội dung
// @Description Đọc các cờ tiến trình sinh nội dung của user đang đăng nhập
// @Produce json
// @Router /education/generation-status [get]
func (h *GenerationHandler) HandleGenerationStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		status, err := h.GenerationService.Status(c.Context(), userID)
		h.HandleResponse(c, status, err)
		return nil
	})
}
