package mindmap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"you_education/internal/logger"
	"you_education/internal/provider"
)

// notesMaxTokens là trần token cho một bài ghi chú
const notesMaxTokens = 4096

const notesSystemPrompt = `Bạn là giáo viên soạn tài liệu tự học cho học sinh.
Từ tiêu đề phần học và mô tả được giao, hãy viết một bài ghi chú markdown hoàn chỉnh bằng tiếng Việt:
- Bắt đầu bằng tiêu đề cấp 1 đặt tên cho bài ghi chú.
- Chia thành các mục có heading, mỗi mục trình bày một ý chính bằng gạch đầu dòng.
- In đậm các thuật ngữ quan trọng khi xuất hiện lần đầu.
- Kết thúc bằng mục tóm tắt ngắn các ý cần nhớ.
Chỉ trả về nội dung markdown, không kèm lời dẫn.`

// notesFallbackContent là nội dung tạm khi LLM không sinh được bài ghi chú:
// tiêu đề node + dấu hiệu sinh thất bại + mô tả gốc, để ghi chú luôn hiển thị được.
const notesFallbackContent = "# %s\n\n**Ghi chú đang được biên soạn.** Nội dung cho phần này chưa sinh được, vui lòng tạo lại sau.\n\n**Mô tả nội dung dự kiến:** %s\n"

// noteTask là một ghi chú cần sinh nội dung, kèm tiêu đề node lá chứa nó
type noteTask struct {
	noteID string
	title  string
}

// NotesGenerator sinh nội dung markdown cho các ghi chú placeholder,
// chạy song song có giới hạn theo note.
type NotesGenerator struct {
	llm         provider.LLMCompleter
	notes       NoteStore
	concurrency int
}

// NewNotesGenerator tạo NotesGenerator với giới hạn số bài sinh đồng thời
func NewNotesGenerator(llm provider.LLMCompleter, notes NoteStore, concurrency int) *NotesGenerator {
	if concurrency <= 0 {
		concurrency = 3
	}
	return &NotesGenerator{llm: llm, notes: notes, concurrency: concurrency}
}

// GenerateAll sinh nội dung cho mọi resource ghi chú đã có note id trong cây,
// kể cả các ghi chú còn sót lại từ một lần chạy dở trước đó.
// LLM lỗi ở một note thì note đó nhận nội dung tạm thay vì làm hỏng cả đợt;
// chỉ lỗi ghi vào kho (kể cả ghi nội dung tạm) mới được gộp trả về.
func (g *NotesGenerator) GenerateAll(ctx context.Context, root *Node) error {
	tasks := collectNoteTasks(root)
	if len(tasks) == 0 {
		return nil
	}

	var mu sync.Mutex
	var failures []error

	grp, groupCtx := errgroup.WithContext(ctx)
	grp.SetLimit(g.concurrency)

	for _, task := range tasks {
		grp.Go(func() error {
			if err := g.generateOne(groupCtx, task); err != nil {
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(failures...)
}

// collectNoteTasks gom các resource ghi chú đã vật chất hóa theo thứ tự duyệt lá
func collectNoteTasks(root *Node) []noteTask {
	var tasks []noteTask
	_ = root.WalkLeaves(func(leaf *Node) error {
		for _, res := range leaf.Resources {
			if res.Type == ResourceTypeNotes && res.Data.ID != "" {
				tasks = append(tasks, noteTask{noteID: res.Data.ID, title: leaf.Title})
			}
		}
		return nil
	})
	return tasks
}

func (g *NotesGenerator) generateOne(ctx context.Context, task noteTask) error {
	description, err := g.notes.NoteDescription(ctx, task.noteID)
	if err != nil {
		return fmt.Errorf("đọc mô tả ghi chú %s thất bại: %w", task.noteID, err)
	}

	userPrompt := fmt.Sprintf("Tiêu đề phần học: %s\n\nMô tả bài ghi chú cần viết:\n\n%s", task.title, description)
	content, llmErr := g.llm.Complete(ctx, notesSystemPrompt, userPrompt, notesMaxTokens)
	if llmErr != nil || content == "" {
		logger.GetAppLogger().WithError(llmErr).
			WithField("note_id", task.noteID).
			WithField("title", task.title).
			Warn("🧠 [MINDMAP] Sinh nội dung ghi chú thất bại, ghi nội dung tạm")
		content = fmt.Sprintf(notesFallbackContent, task.title, description)
	}

	if err := g.notes.UpdateNoteContent(ctx, task.noteID, content); err != nil {
		return fmt.Errorf("ghi nội dung ghi chú %s thất bại: %w", task.noteID, err)
	}
	return nil
}
