package mindmap

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNoteStore lưu note trong map, có thể gắn lỗi theo mô tả.
// Có mutex vì NotesGenerator gọi song song.
type fakeNoteStore struct {
	mu         sync.Mutex
	notes      map[string]string // id -> description
	contents   map[string]string // id -> content
	failOn     map[string]error  // description -> lỗi khi CreateNote
	failUpdate map[string]error  // id -> lỗi khi UpdateNoteContent
	nextID     int
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{
		notes:      map[string]string{},
		contents:   map[string]string{},
		failOn:     map[string]error{},
		failUpdate: map[string]error{},
	}
}

func (f *fakeNoteStore) CreateNote(_ context.Context, description string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOn[description]; ok {
		return "", err
	}
	f.nextID++
	id := fmt.Sprintf("note-%d", f.nextID)
	f.notes[id] = description
	return id, nil
}

func (f *fakeNoteStore) NoteDescription(_ context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	desc, ok := f.notes[id]
	if !ok {
		return "", fmt.Errorf("không tìm thấy note %s", id)
	}
	return desc, nil
}

func (f *fakeNoteStore) UpdateNoteContent(_ context.Context, id string, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failUpdate[id]; ok {
		return err
	}
	if _, ok := f.notes[id]; !ok {
		return fmt.Errorf("không tìm thấy note %s", id)
	}
	f.contents[id] = content
	return nil
}

func stagedTree() *Node {
	return &Node{
		Title: "Gốc",
		Subtopics: []*Node{
			{
				Title:     "Lá 1",
				IsEndNode: true,
				Resources: []Resource{
					{ID: "r1", Type: ResourceTypeVideo, Data: ResourceData{URL: "https://www.youtube.com/watch?v=abc", Description: "video hay"}, Description: "mô tả thừa"},
					{ID: "r2", Type: ResourceTypeNotes, Data: ResourceData{Description: "ghi chú 1"}},
				},
			},
			{
				Title:     "Lá 2",
				IsEndNode: true,
				Resources: []Resource{
					{ID: "r3", Type: "md_notes", Data: ResourceData{Description: "ghi chú 2"}},
				},
			},
		},
	}
}

func TestMaterialize_TaoNoteVaXoaMoTa(t *testing.T) {
	store := newFakeNoteStore()
	m := NewMaterializer(store)

	tree, noteIDs, err := m.Materialize(context.Background(), stagedTree())
	require.NoError(t, err)
	require.Len(t, noteIDs, 2)

	// Note được tạo với đúng mô tả staging
	assert.Equal(t, "ghi chú 1", store.notes[noteIDs[0]])
	assert.Equal(t, "ghi chú 2", store.notes[noteIDs[1]])

	// Resource ghi chú giờ tham chiếu note id, mô tả bị xóa ở cả hai cấp
	leaf1 := tree.Subtopics[0]
	assert.Equal(t, noteIDs[0], leaf1.Resources[1].Data.ID)
	assert.Empty(t, leaf1.Resources[1].Data.Description)
	assert.Empty(t, leaf1.Resources[1].Description)

	// Video giữ URL, mọi mô tả bị xóa
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", leaf1.Resources[0].Data.URL)
	assert.Empty(t, leaf1.Resources[0].Data.Description)
	assert.Empty(t, leaf1.Resources[0].Description)
}

func TestMaterialize_ChuanHoaNhanCu(t *testing.T) {
	store := newFakeNoteStore()
	m := NewMaterializer(store)

	tree, _, err := m.Materialize(context.Background(), stagedTree())
	require.NoError(t, err)
	assert.Equal(t, ResourceTypeNotes, tree.Subtopics[1].Resources[0].Type)
}

func TestMaterialize_KhongSuaCayGoc(t *testing.T) {
	store := newFakeNoteStore()
	m := NewMaterializer(store)
	original := stagedTree()

	_, _, err := m.Materialize(context.Background(), original)
	require.NoError(t, err)

	// Cây đầu vào không bị đổi: mô tả staging vẫn còn
	assert.Equal(t, "ghi chú 1", original.Subtopics[0].Resources[1].Data.Description)
	assert.Equal(t, ResourceType("md_notes"), original.Subtopics[1].Resources[0].Type)
}

func TestMaterialize_LoiMotLaKhongChanCacLaKhac(t *testing.T) {
	store := newFakeNoteStore()
	store.failOn["ghi chú 1"] = fmt.Errorf("mongo timeout")
	m := NewMaterializer(store)

	tree, noteIDs, err := m.Materialize(context.Background(), stagedTree())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lá 1")

	// Lá còn lại vẫn được vật chất hóa
	require.Len(t, noteIDs, 1)
	assert.Equal(t, "ghi chú 2", store.notes[noteIDs[0]])
	assert.Equal(t, noteIDs[0], tree.Subtopics[1].Resources[0].Data.ID)

	// Lá lỗi giữ nguyên mô tả để lần chạy lại còn dữ liệu
	assert.Equal(t, "ghi chú 1", tree.Subtopics[0].Resources[1].Data.Description)
	assert.Empty(t, tree.Subtopics[0].Resources[1].Data.ID)
}

func TestMaterialize_ChayLaiKhongTaoTrung(t *testing.T) {
	store := newFakeNoteStore()
	m := NewMaterializer(store)

	tree := stagedTree()
	// Resource đã vật chất hóa từ lần chạy trước
	tree.Subtopics[0].Resources[1].Data.ID = "note-cu"
	tree.Subtopics[0].Resources[1].Data.Description = "ghi chú 1"
	store.notes["note-cu"] = "ghi chú 1"

	result, noteIDs, err := m.Materialize(context.Background(), tree)
	require.NoError(t, err)

	// Chỉ tạo note cho resource chưa có id
	require.Len(t, noteIDs, 1)
	assert.Equal(t, "ghi chú 2", store.notes[noteIDs[0]])
	assert.Equal(t, "note-cu", result.Subtopics[0].Resources[1].Data.ID)
	assert.Empty(t, result.Subtopics[0].Resources[1].Data.Description)
}

func TestMaterialize_ThieuMoTa(t *testing.T) {
	store := newFakeNoteStore()
	m := NewMaterializer(store)

	tree := &Node{
		Title:     "Lá",
		IsEndNode: true,
		Resources: []Resource{{ID: "r1", Type: ResourceTypeNotes}},
	}
	_, _, err := m.Materialize(context.Background(), tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thiếu mô tả")
}

func TestMaterialize_MoTaCapResource(t *testing.T) {
	// Biến thể cũ: mô tả nằm ở cấp resource thay vì trong data
	store := newFakeNoteStore()
	m := NewMaterializer(store)

	tree := &Node{
		Title:     "Lá",
		IsEndNode: true,
		Resources: []Resource{{ID: "r1", Type: ResourceTypeNotes, Description: "mô tả cấp ngoài"}},
	}
	result, noteIDs, err := m.Materialize(context.Background(), tree)
	require.NoError(t, err)
	require.Len(t, noteIDs, 1)
	assert.Equal(t, "mô tả cấp ngoài", store.notes[noteIDs[0]])
	assert.Empty(t, result.Resources[0].Description)
}
