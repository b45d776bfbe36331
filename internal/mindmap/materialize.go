package mindmap

import (
	"context"
	"errors"
	"fmt"

	"you_education/internal/logger"
)

// NoteStore là kho ghi chú mà pipeline dùng để tạo placeholder và ghi nội dung.
// ID là hex ObjectID của bản ghi Note.
type NoteStore interface {
	// CreateNote tạo một ghi chú mới chỉ có mô tả, nội dung để trống
	CreateNote(ctx context.Context, description string) (string, error)
	// NoteDescription đọc lại mô tả của một ghi chú đã tạo
	NoteDescription(ctx context.Context, id string) (string, error)
	// UpdateNoteContent ghi nội dung markdown vào ghi chú
	UpdateNoteContent(ctx context.Context, id string, content string) error
}

// Materializer chuyển các resource ghi chú trong cây từ dạng mô tả sang dạng
// tham chiếu: tạo bản ghi Note cho mỗi mô tả rồi thay description bằng note id.
type Materializer struct {
	notes NoteStore
}

// NewMaterializer tạo Materializer trên một NoteStore
func NewMaterializer(notes NoteStore) *Materializer {
	return &Materializer{notes: notes}
}

// Materialize duyệt toàn bộ cây, tạo Note cho mọi resource ghi chú còn ở dạng
// mô tả và trả về cây đã hoàn thiện cùng danh sách note id đã tạo.
//
// Luôn duyệt hết cây kể cả khi có resource lỗi: các resource tạo được vẫn được
// hoàn thiện, các resource lỗi giữ nguyên mô tả, và lỗi gộp được trả về sau cùng.
// Resource đã có note id (chạy lại sau lỗi) được giữ nguyên, không tạo trùng.
func (m *Materializer) Materialize(ctx context.Context, root *Node) (*Node, []string, error) {
	if root == nil {
		return nil, nil, fmt.Errorf("cây sơ đồ nil")
	}

	tree := root.Clone()
	var createdIDs []string
	var failures []error

	_ = tree.WalkLeaves(func(leaf *Node) error {
		for i := range leaf.Resources {
			res := &leaf.Resources[i]

			// Chuẩn hóa nhãn cũ trước khi xử lý
			if res.Type == legacyNotesType {
				res.Type = ResourceTypeNotes
			}

			switch res.Type {
			case ResourceTypeVideo:
				// Video không có staging: chỉ cần xóa mô tả thừa
				res.Data.Description = ""
			case ResourceTypeNotes:
				if res.Data.ID != "" {
					// Đã vật chất hóa từ lần chạy trước
					res.Data.Description = ""
					res.Description = ""
					continue
				}

				description := res.Data.Description
				if description == "" {
					description = res.Description
				}
				if description == "" {
					failures = append(failures, fmt.Errorf("resource ghi chú %s của node %q thiếu mô tả", res.ID, leaf.Title))
					continue
				}

				noteID, err := m.notes.CreateNote(ctx, description)
				if err != nil {
					// Giữ nguyên mô tả để lần chạy lại còn dữ liệu tạo note
					logger.GetErrorLogger().WithError(err).
						WithField("node", leaf.Title).
						Error("🧠 [MINDMAP] Tạo ghi chú thất bại")
					failures = append(failures, fmt.Errorf("tạo ghi chú cho node %q thất bại: %w", leaf.Title, err))
					continue
				}

				res.Data.ID = noteID
				res.Data.Description = ""
				createdIDs = append(createdIDs, noteID)
			}

			res.Description = ""
		}
		return nil
	})

	if len(failures) > 0 {
		return tree, createdIDs, errors.Join(failures...)
	}
	return tree, createdIDs, nil
}
