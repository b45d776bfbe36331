package mindmap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"you_education/internal/common"
	"you_education/internal/logger"
)

// TopicEnricher gắn video tham khảo cho danh sách chủ đề
type TopicEnricher interface {
	Enrich(ctx context.Context, topics []string) ([]EnrichedTopic, error)
}

// TreeSynthesizer dựng cây sơ đồ từ các chủ đề đã làm giàu
type TreeSynthesizer interface {
	Synthesize(ctx context.Context, chapterTitle string, topics []EnrichedTopic) (*Node, error)
}

// ResourceMaterializer hoàn thiện cây: tạo Note cho các resource ghi chú
type ResourceMaterializer interface {
	Materialize(ctx context.Context, root *Node) (*Node, []string, error)
}

// NoteContentGenerator sinh nội dung cho mọi resource ghi chú trong cây đã vật chất hóa
type NoteContentGenerator interface {
	GenerateAll(ctx context.Context, root *Node) error
}

// MindMapStore lưu sơ đồ tư duy đã hoàn thiện
type MindMapStore interface {
	// MindMapExists kiểm tra chương đã có sơ đồ chưa
	MindMapExists(ctx context.Context, chapterID string) (bool, error)
	// CreateMindMap lưu sơ đồ và trả về id bản ghi
	CreateMindMap(ctx context.Context, chapterID string, root *Node) (string, error)
}

// ChapterLinker gắn sơ đồ vừa tạo vào chương
type ChapterLinker interface {
	LinkMindMap(ctx context.Context, chapterID string, mindMapID string) error
}

// GenerationLock là lock theo user chống chạy song song nhiều tiến trình sinh
type GenerationLock interface {
	// Acquire giành lock; trả về lỗi trùng tiến trình nếu user đang giữ lock
	Acquire(ctx context.Context, userID string) error
	// Release trả lock, an toàn khi gọi nhiều lần
	Release(ctx context.Context, userID string) error
}

// Request là yêu cầu sinh sơ đồ tư duy cho một chương
type Request struct {
	UserID       string
	ChapterID    string
	ChapterTitle string
	Topics       []string
}

// Result là kết quả một lần sinh thành công
type Result struct {
	MindMapID string
	Tree      *Node
	NoteIDs   []string
}

// Orchestrator điều phối toàn bộ pipeline sinh sơ đồ tư duy.
// Thứ tự cố định: kiểm tra đầu vào → giành lock → làm giàu chủ đề → tổng hợp cây
// → vật chất hóa ghi chú → sinh nội dung ghi chú → lưu sơ đồ → gắn vào chương.
// Sơ đồ chỉ được lưu sau khi mọi giai đoạn trước đó thành công; các Note đã tạo
// không bị rollback khi lưu thất bại. Lock luôn được trả dù pipeline thành công
// hay thất bại.
type Orchestrator struct {
	enricher     TopicEnricher
	synthesizer  TreeSynthesizer
	materializer ResourceMaterializer
	notesGen     NoteContentGenerator
	store        MindMapStore
	chapters     ChapterLinker
	lock         GenerationLock
}

// NewOrchestrator nối các giai đoạn pipeline thành một Orchestrator
func NewOrchestrator(
	enricher TopicEnricher,
	synthesizer TreeSynthesizer,
	materializer ResourceMaterializer,
	notesGen NoteContentGenerator,
	store MindMapStore,
	chapters ChapterLinker,
	lock GenerationLock,
) *Orchestrator {
	return &Orchestrator{
		enricher:     enricher,
		synthesizer:  synthesizer,
		materializer: materializer,
		notesGen:     notesGen,
		store:        store,
		chapters:     chapters,
		lock:         lock,
	}
}

// Generate chạy pipeline cho một chương.
// Các lỗi nghiệp vụ trả về dạng *common.Error để handler map thẳng sang HTTP.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if len(req.Topics) == 0 {
		return nil, common.ErrEmptyTopics
	}
	if req.UserID == "" || req.ChapterID == "" {
		return nil, common.ErrInvalidInput
	}

	log := logger.GetAppLogger().WithFields(logrus.Fields{
		"user_id":    req.UserID,
		"chapter_id": req.ChapterID,
	})

	exists, err := o.store.MindMapExists(ctx, req.ChapterID)
	if err != nil {
		return nil, fmt.Errorf("kiểm tra sơ đồ hiện có thất bại: %w", err)
	}
	if exists {
		return nil, common.ErrMindMapExists
	}

	if err := o.lock.Acquire(ctx, req.UserID); err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := o.lock.Release(context.WithoutCancel(ctx), req.UserID); releaseErr != nil {
			log.WithError(releaseErr).Error("🧠 [MINDMAP] Trả lock sinh nội dung thất bại")
		}
	}()

	log.WithField("topics", len(req.Topics)).Info("🧠 [MINDMAP] Bắt đầu sinh sơ đồ tư duy")

	enriched, err := o.enricher.Enrich(ctx, req.Topics)
	if err != nil {
		return nil, fmt.Errorf("làm giàu chủ đề thất bại: %w", err)
	}

	tree, err := o.synthesizer.Synthesize(ctx, req.ChapterTitle, enriched)
	if err != nil {
		return nil, err
	}
	log.Info("🧠 [MINDMAP] Tổng hợp cây sơ đồ thành công")

	finalTree, noteIDs, err := o.materializer.Materialize(ctx, tree)
	if err != nil {
		return nil, fmt.Errorf("vật chất hóa ghi chú thất bại: %w", err)
	}

	if err := o.notesGen.GenerateAll(ctx, finalTree); err != nil {
		return nil, fmt.Errorf("sinh nội dung ghi chú thất bại: %w", err)
	}

	// Chỉ persist khi các giai đoạn trên đã xong; ghi thất bại thì các Note đã
	// tạo vẫn được giữ lại và chương vẫn chưa có sơ đồ, cho phép chạy lại.
	mindMapID, err := o.store.CreateMindMap(ctx, req.ChapterID, finalTree)
	if err != nil {
		return nil, fmt.Errorf("lưu sơ đồ tư duy thất bại: %w", err)
	}

	if err := o.chapters.LinkMindMap(ctx, req.ChapterID, mindMapID); err != nil {
		return nil, fmt.Errorf("gắn sơ đồ vào chương thất bại: %w", err)
	}

	log.WithFields(logrus.Fields{
		"mind_map_id": mindMapID,
		"notes":       len(noteIDs),
	}).Info("🧠 [MINDMAP] Hoàn tất sinh sơ đồ tư duy")

	return &Result{MindMapID: mindMapID, Tree: finalTree, NoteIDs: noteIDs}, nil
}
