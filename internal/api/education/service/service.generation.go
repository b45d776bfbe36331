package edusvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	edudto "you_education/internal/api/education/dto"
	models "you_education/internal/api/education/models"
	"you_education/internal/common"
	"you_education/internal/global"
	"you_education/internal/logger"
	"you_education/internal/mindmap"
	"you_education/internal/provider"
)

// defaultQuizQuestionCount là số câu hỏi khi client không chỉ định
const defaultQuizQuestionCount = 10

const quizSystemPrompt = `Bạn là giáo viên soạn câu hỏi trắc nghiệm cho học sinh.
Từ các bài ghi chú được cung cấp, hãy soạn một bộ câu hỏi trắc nghiệm bằng tiếng Việt.

Trả về DUY NHẤT một object JSON theo cấu trúc:
{"title": <tên bộ quiz>, "questions": [{"question": ..., "options": [4 phương án],
"correctOption": <chỉ số 0-3 của phương án đúng>, "explanation": <giải thích ngắn>}]}
Câu hỏi phải kiểm tra hiểu bản chất, không hỏi mẹo; các phương án sai phải hợp lý.`

// GenerationService nối các adapter bên ngoài với pipeline sinh nội dung
// và với các service lưu trữ của domain education.
type GenerationService struct {
	orchestrator *mindmap.Orchestrator
	locks        *JobLockService
	llm          provider.LLMCompleter
	mindMaps     *MindMapService
	notes        *NoteService
	quizzes      *QuizService
}

// NewGenerationService dựng toàn bộ pipeline từ cấu hình server:
// Gemini cho tổng hợp và sinh nội dung, YouTube cho làm giàu chủ đề,
// các service Mongo cho lưu trữ và lock.
func NewGenerationService(ctx context.Context) (*GenerationService, error) {
	cfg := global.ServerConfig

	gemini, err := provider.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("khởi tạo Gemini client thất bại: %w", err)
	}
	youtubeClient, err := provider.NewYouTubeClient(ctx, cfg.YouTubeAPIKey, int64(cfg.YouTubeMaxResults))
	if err != nil {
		return nil, fmt.Errorf("khởi tạo YouTube client thất bại: %w", err)
	}

	mindMaps, err := NewMindMapService()
	if err != nil {
		return nil, err
	}
	notes, err := NewNoteService()
	if err != nil {
		return nil, err
	}
	chapters, err := NewChapterService()
	if err != nil {
		return nil, err
	}
	quizzes, err := NewQuizService()
	if err != nil {
		return nil, err
	}
	locks, err := NewJobLockService()
	if err != nil {
		return nil, err
	}

	orchestrator := mindmap.NewOrchestrator(
		mindmap.NewEnricher(youtubeClient, cfg.GenerationConcurrency),
		mindmap.NewSynthesizer(gemini),
		mindmap.NewMaterializer(notes),
		mindmap.NewNotesGenerator(gemini, notes, cfg.GenerationConcurrency),
		mindMaps,
		chapters,
		locks.ForJob(models.FlagGeneratingMindMap),
	)

	return &GenerationService{
		orchestrator: orchestrator,
		locks:        locks,
		llm:          gemini,
		mindMaps:     mindMaps,
		notes:        notes,
		quizzes:      quizzes,
	}, nil
}

// GenerateMindMap chạy pipeline sinh sơ đồ tư duy cho một chương
func (s *GenerationService) GenerateMindMap(ctx context.Context, userID string, input edudto.GenerateMindMapInput) (*mindmap.Result, error) {
	return s.orchestrator.Generate(ctx, mindmap.Request{
		UserID:       userID,
		ChapterID:    input.ChapterID,
		ChapterTitle: input.ChapterTitle,
		Topics:       input.Topics,
	})
}

// Status đọc trạng thái sinh nội dung hiện tại của user
func (s *GenerationService) Status(ctx context.Context, userID string) (*models.GenerationStatus, error) {
	return s.locks.StatusOfUser(ctx, userID)
}

// quizPayload là cấu trúc JSON mà LLM trả về khi sinh quiz
type quizPayload struct {
	Title     string                `json:"title"`
	Questions []models.QuizQuestion `json:"questions"`
}

// GenerateQuiz sinh bộ quiz từ các ghi chú trong sơ đồ tư duy của chương.
// Dùng cùng lock theo user với pipeline sơ đồ, trên cờ isGeneratingQuiz.
func (s *GenerationService) GenerateQuiz(ctx context.Context, userID string, input edudto.GenerateQuizInput) (*models.Quiz, error) {
	chapterOID, err := primitive.ObjectIDFromHex(input.ChapterID)
	if err != nil {
		return nil, fmt.Errorf("chapterId không hợp lệ: %w", common.ErrInvalidFormat)
	}

	if err := s.locks.Acquire(ctx, userID, models.FlagGeneratingQuiz); err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.locks.Release(context.WithoutCancel(ctx), userID, models.FlagGeneratingQuiz); releaseErr != nil {
			logger.GetErrorLogger().WithError(releaseErr).
				WithField("user_id", userID).
				Error("📝 [QUIZ] Trả lock sinh quiz thất bại")
		}
	}()

	mindMap, err := s.mindMaps.FindOne(ctx, bson.M{"chapterId": chapterOID}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(
				common.ErrCodeBusinessGeneration,
				"Chương chưa có sơ đồ tư duy để sinh quiz",
				common.StatusBadRequest,
				nil,
			)
		}
		return nil, err
	}

	contents, err := s.collectNoteContents(ctx, &mindMap.Content)
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, common.NewError(
			common.ErrCodeBusinessGeneration,
			"Sơ đồ tư duy chưa có ghi chú nào hoàn chỉnh để sinh quiz",
			common.StatusBadRequest,
			nil,
		)
	}

	questionCount := input.QuestionCount
	if questionCount <= 0 {
		questionCount = defaultQuizQuestionCount
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Soạn %d câu hỏi trắc nghiệm từ các ghi chú sau:\n", questionCount)
	for i, content := range contents {
		fmt.Fprintf(&b, "\n--- Ghi chú %d ---\n%s\n", i+1, content)
	}

	raw, err := s.llm.Complete(ctx, quizSystemPrompt, b.String(), int32(global.ServerConfig.GeminiMaxTokens))
	if err != nil {
		return nil, fmt.Errorf("gọi LLM sinh quiz thất bại: %w", err)
	}

	jsonText, err := mindmap.ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSynthesisInvalidShape, err)
	}
	var payload quizPayload
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return nil, fmt.Errorf("%w: parse JSON quiz thất bại: %v", common.ErrSynthesisInvalidShape, err)
	}
	if len(payload.Questions) == 0 {
		return nil, fmt.Errorf("%w: bộ quiz không có câu hỏi nào", common.ErrSynthesisInvalidShape)
	}
	for i, q := range payload.Questions {
		if q.Question == "" || len(q.Options) < 2 || q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return nil, fmt.Errorf("%w: câu hỏi %d không hợp lệ", common.ErrSynthesisInvalidShape, i+1)
		}
	}

	quiz, err := s.quizzes.InsertOne(ctx, models.Quiz{
		ChapterID: chapterOID,
		Title:     payload.Title,
		Questions: payload.Questions,
	})
	if err != nil {
		return nil, err
	}

	logger.GetAppLogger().WithField("chapter_id", input.ChapterID).
		WithField("questions", len(quiz.Questions)).
		Info("📝 [QUIZ] Sinh bộ quiz thành công")
	return &quiz, nil
}

// collectNoteContents gom nội dung các ghi chú đã sinh xong trong cây,
// bỏ qua placeholder còn nội dung null.
func (s *GenerationService) collectNoteContents(ctx context.Context, root *mindmap.Node) ([]string, error) {
	var noteIDs []primitive.ObjectID
	_ = root.WalkLeaves(func(leaf *mindmap.Node) error {
		for _, res := range leaf.Resources {
			if res.Type != mindmap.ResourceTypeNotes || res.Data.ID == "" {
				continue
			}
			oid, err := primitive.ObjectIDFromHex(res.Data.ID)
			if err != nil {
				continue
			}
			noteIDs = append(noteIDs, oid)
		}
		return nil
	})
	if len(noteIDs) == 0 {
		return nil, nil
	}

	noteList, err := s.notes.FindManyByIds(ctx, noteIDs)
	if err != nil {
		return nil, err
	}

	var contents []string
	for _, note := range noteList {
		if note.Content != nil && *note.Content != "" {
			contents = append(contents, *note.Content)
		}
	}
	return contents, nil
}
