package mindmap

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedLLM là fakeLLM an toàn khi gọi song song
type lockedLLM struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *lockedLLM) Complete(_ context.Context, _ string, userPrompt string, _ int32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func seededStore(descriptions ...string) (*fakeNoteStore, []string) {
	store := newFakeNoteStore()
	var ids []string
	for _, d := range descriptions {
		id, _ := store.CreateNote(context.Background(), d)
		ids = append(ids, id)
	}
	return store, ids
}

// notesTree dựng cây một tầng: mỗi cặp (tiêu đề lá, note id) thành một lá
// có đúng một resource ghi chú đã vật chất hóa.
func notesTree(pairs ...[2]string) *Node {
	root := &Node{Title: "Chương"}
	for _, p := range pairs {
		root.Subtopics = append(root.Subtopics, &Node{
			Title:     p[0],
			IsEndNode: true,
			Resources: []Resource{{
				ID:   "r-" + p[1],
				Type: ResourceTypeNotes,
				Data: ResourceData{ID: p[1]},
			}},
		})
	}
	return root
}

func TestGenerateAll_GhiNoiDungChoMoiNote(t *testing.T) {
	store, ids := seededStore("mô tả 1", "mô tả 2", "mô tả 3")
	llm := &lockedLLM{response: "# Bài ghi chú\n\nNội dung."}
	g := NewNotesGenerator(llm, store, 2)

	tree := notesTree([2]string{"Lá 1", ids[0]}, [2]string{"Lá 2", ids[1]}, [2]string{"Lá 3", ids[2]})
	err := g.GenerateAll(context.Background(), tree)
	require.NoError(t, err)
	assert.Equal(t, 3, llm.calls)
	for _, id := range ids {
		assert.Equal(t, "# Bài ghi chú\n\nNội dung.", store.contents[id])
	}

	// Prompt mang tiêu đề node lá để bài ghi chú bám sát phần học
	joined := strings.Join(llm.prompts, "\n===\n")
	assert.Contains(t, joined, "Lá 1")
	assert.Contains(t, joined, "mô tả 1")
}

func TestGenerateAll_LLMLoiThiGhiNoiDungTam(t *testing.T) {
	store, ids := seededStore("cấu trúc tế bào")
	llm := &lockedLLM{err: fmt.Errorf("model overloaded")}
	g := NewNotesGenerator(llm, store, 1)

	err := g.GenerateAll(context.Background(), notesTree([2]string{"Tế bào", ids[0]}))
	require.NoError(t, err)

	// Nội dung tạm vẫn được ghi: tiêu đề node, dấu hiệu thất bại và mô tả gốc
	content := store.contents[ids[0]]
	assert.Contains(t, content, "# Tế bào")
	assert.Contains(t, content, "Ghi chú đang được biên soạn")
	assert.Contains(t, content, "cấu trúc tế bào")
}

func TestGenerateAll_LoiGhiKhoMoiLaLoiThat(t *testing.T) {
	store, ids := seededStore("mô tả 1", "mô tả 2")
	store.failUpdate[ids[0]] = fmt.Errorf("mongo write error")
	llm := &lockedLLM{response: "# OK"}
	g := NewNotesGenerator(llm, store, 2)

	err := g.GenerateAll(context.Background(), notesTree([2]string{"Lá 1", ids[0]}, [2]string{"Lá 2", ids[1]}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ids[0])

	// Note còn lại vẫn được ghi
	assert.Equal(t, "# OK", store.contents[ids[1]])
}

func TestGenerateAll_BaoGomNoteCuaLanChayDo(t *testing.T) {
	// Note còn sót từ lần chạy trước (đã có id trong cây) cũng được sinh lại nội dung
	store, ids := seededStore("mô tả cũ", "mô tả mới")
	store.contents[ids[0]] = "# Ghi chú đang được biên soạn\n\ncũ"
	llm := &lockedLLM{response: "# Hoàn chỉnh"}
	g := NewNotesGenerator(llm, store, 2)

	err := g.GenerateAll(context.Background(), notesTree([2]string{"Cũ", ids[0]}, [2]string{"Mới", ids[1]}))
	require.NoError(t, err)
	assert.Equal(t, "# Hoàn chỉnh", store.contents[ids[0]])
	assert.Equal(t, "# Hoàn chỉnh", store.contents[ids[1]])
}

func TestGenerateAll_CayKhongCoNote(t *testing.T) {
	g := NewNotesGenerator(&lockedLLM{}, newFakeNoteStore(), 2)
	tree := &Node{Title: "Chương", Subtopics: []*Node{{Title: "Lá", IsEndNode: true}}}
	assert.NoError(t, g.GenerateAll(context.Background(), tree))
}
