package mindmap

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"you_education/internal/common"
)

// Các fake cho từng giai đoạn pipeline, ghi lại thứ tự gọi vào chung một slice

type fakeEnricher struct {
	trace *[]string
	err   error
}

func (f *fakeEnricher) Enrich(_ context.Context, topics []string) ([]EnrichedTopic, error) {
	*f.trace = append(*f.trace, "enrich")
	if f.err != nil {
		return nil, f.err
	}
	out := make([]EnrichedTopic, len(topics))
	for i, topic := range topics {
		out[i] = EnrichedTopic{Title: topic}
	}
	return out, nil
}

type fakeSynthesizer struct {
	trace *[]string
	err   error
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, chapterTitle string, _ []EnrichedTopic) (*Node, error) {
	*f.trace = append(*f.trace, "synthesize")
	if f.err != nil {
		return nil, f.err
	}
	return &Node{
		Title: chapterTitle,
		Subtopics: []*Node{{
			Title:     "Lá",
			IsEndNode: true,
			Resources: []Resource{{ID: "r1", Type: ResourceTypeNotes, Data: ResourceData{Description: "d"}}},
		}},
	}, nil
}

type fakeMaterializer struct {
	trace *[]string
	err   error
}

func (f *fakeMaterializer) Materialize(_ context.Context, root *Node) (*Node, []string, error) {
	*f.trace = append(*f.trace, "materialize")
	if f.err != nil {
		return nil, nil, f.err
	}
	return root, []string{"note-1"}, nil
}

type fakeNotesGen struct {
	trace *[]string
	err   error
}

func (f *fakeNotesGen) GenerateAll(_ context.Context, _ *Node) error {
	*f.trace = append(*f.trace, "notes")
	return f.err
}

type fakeStore struct {
	trace     *[]string
	exists    bool
	existsErr error
	createErr error
}

func (f *fakeStore) MindMapExists(_ context.Context, _ string) (bool, error) {
	*f.trace = append(*f.trace, "exists")
	return f.exists, f.existsErr
}

func (f *fakeStore) CreateMindMap(_ context.Context, _ string, _ *Node) (string, error) {
	*f.trace = append(*f.trace, "create")
	if f.createErr != nil {
		return "", f.createErr
	}
	return "mindmap-1", nil
}

type fakeLinker struct {
	trace *[]string
	err   error
}

func (f *fakeLinker) LinkMindMap(_ context.Context, _ string, _ string) error {
	*f.trace = append(*f.trace, "link")
	return f.err
}

type fakeLock struct {
	trace      *[]string
	acquireErr error
	held       bool
}

func (f *fakeLock) Acquire(_ context.Context, _ string) error {
	*f.trace = append(*f.trace, "acquire")
	if f.acquireErr != nil {
		return f.acquireErr
	}
	f.held = true
	return nil
}

func (f *fakeLock) Release(_ context.Context, _ string) error {
	*f.trace = append(*f.trace, "release")
	f.held = false
	return nil
}

type pipelineFakes struct {
	trace        []string
	enricher     *fakeEnricher
	synthesizer  *fakeSynthesizer
	materializer *fakeMaterializer
	notesGen     *fakeNotesGen
	store        *fakeStore
	linker       *fakeLinker
	lock         *fakeLock
}

func newPipelineFakes() *pipelineFakes {
	p := &pipelineFakes{}
	p.enricher = &fakeEnricher{trace: &p.trace}
	p.synthesizer = &fakeSynthesizer{trace: &p.trace}
	p.materializer = &fakeMaterializer{trace: &p.trace}
	p.notesGen = &fakeNotesGen{trace: &p.trace}
	p.store = &fakeStore{trace: &p.trace}
	p.linker = &fakeLinker{trace: &p.trace}
	p.lock = &fakeLock{trace: &p.trace}
	return p
}

func (p *pipelineFakes) orchestrator() *Orchestrator {
	return NewOrchestrator(p.enricher, p.synthesizer, p.materializer, p.notesGen, p.store, p.linker, p.lock)
}

func validRequest() Request {
	return Request{
		UserID:       "64a000000000000000000001",
		ChapterID:    "64a000000000000000000002",
		ChapterTitle: "Chương 1",
		Topics:       []string{"chủ đề A"},
	}
}

func TestGenerate_ThanhCongDungThuTu(t *testing.T) {
	p := newPipelineFakes()

	result, err := p.orchestrator().Generate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "mindmap-1", result.MindMapID)
	assert.Equal(t, []string{"note-1"}, result.NoteIDs)

	// Sơ đồ chỉ được lưu sau khi nội dung ghi chú đã sinh xong
	assert.Equal(t, []string{"exists", "acquire", "enrich", "synthesize", "materialize", "notes", "create", "link", "release"}, p.trace)
	assert.False(t, p.lock.held)
}

func TestGenerate_DanhSachChuDeRong(t *testing.T) {
	p := newPipelineFakes()
	req := validRequest()
	req.Topics = nil

	_, err := p.orchestrator().Generate(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrEmptyTopics)
	// Không chạm vào lock hay store
	assert.Empty(t, p.trace)
}

func TestGenerate_ChuongDaCoSoDo(t *testing.T) {
	p := newPipelineFakes()
	p.store.exists = true

	_, err := p.orchestrator().Generate(context.Background(), validRequest())
	assert.ErrorIs(t, err, common.ErrMindMapExists)
	// Conflict trước khi giành lock: không acquire, không release
	assert.Equal(t, []string{"exists"}, p.trace)
}

func TestGenerate_TrungTienTrinh(t *testing.T) {
	p := newPipelineFakes()
	p.lock.acquireErr = common.ErrGenerationInProgress

	_, err := p.orchestrator().Generate(context.Background(), validRequest())
	assert.ErrorIs(t, err, common.ErrGenerationInProgress)
	// Acquire thất bại thì không được release lock của tiến trình khác
	assert.Equal(t, []string{"exists", "acquire"}, p.trace)
}

func TestGenerate_TongHopLoiVanTraLock(t *testing.T) {
	p := newPipelineFakes()
	p.synthesizer.err = common.ErrSynthesisInvalidShape

	_, err := p.orchestrator().Generate(context.Background(), validRequest())
	assert.ErrorIs(t, err, common.ErrSynthesisInvalidShape)
	assert.Equal(t, "release", p.trace[len(p.trace)-1])
	assert.False(t, p.lock.held)
}

func TestGenerate_LuuLoiVanTraLock_NotesConNguyen(t *testing.T) {
	p := newPipelineFakes()
	p.store.createErr = fmt.Errorf("mongo write error")

	_, err := p.orchestrator().Generate(context.Background(), validRequest())
	require.Error(t, err)

	// Nội dung ghi chú đã sinh trước khi lưu; các Note không bị xóa,
	// sơ đồ chưa được lưu và chương chưa bị gắn gì
	assert.Equal(t, []string{"exists", "acquire", "enrich", "synthesize", "materialize", "notes", "create", "release"}, p.trace)
	assert.False(t, p.lock.held)
}

func TestGenerate_SinhNoiDungNoteLoiThiKhongLuuSoDo(t *testing.T) {
	p := newPipelineFakes()
	p.notesGen.err = fmt.Errorf("mongo write error")

	_, err := p.orchestrator().Generate(context.Background(), validRequest())
	require.Error(t, err)

	// Lỗi ở giai đoạn sinh ghi chú: sơ đồ chưa được lưu nên chạy lại không bị
	// từ chối vì trùng, và lock vẫn được trả
	assert.Equal(t, []string{"exists", "acquire", "enrich", "synthesize", "materialize", "notes", "release"}, p.trace)
	assert.False(t, p.lock.held)
}

// contendedLock mô phỏng CAS lock theo user: chỉ một bên giành được
type contendedLock struct {
	mu        sync.Mutex
	held      bool
	acquired  int
	conflicts int
}

func (l *contendedLock) Acquire(_ context.Context, _ string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		l.conflicts++
		return common.ErrGenerationInProgress
	}
	l.held = true
	l.acquired++
	return nil
}

func (l *contendedLock) Release(_ context.Context, _ string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
	return nil
}

// blockingSynthesizer giữ pipeline đứng ở giai đoạn tổng hợp cho tới khi được thả
type blockingSynthesizer struct {
	inner   *fakeSynthesizer
	started chan struct{}
	release chan struct{}
}

func (b *blockingSynthesizer) Synthesize(ctx context.Context, chapterTitle string, topics []EnrichedTopic) (*Node, error) {
	close(b.started)
	<-b.release
	return b.inner.Synthesize(ctx, chapterTitle, topics)
}

func TestGenerate_HaiYeuCauCungUserChiMotBenChay(t *testing.T) {
	lock := &contendedLock{}

	// Yêu cầu thứ nhất giữ lock và đứng lại giữa pipeline
	first := newPipelineFakes()
	blocker := &blockingSynthesizer{
		inner:   first.synthesizer,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	firstOrch := NewOrchestrator(first.enricher, blocker, first.materializer, first.notesGen, first.store, first.linker, lock)

	firstErr := make(chan error, 1)
	go func() {
		_, err := firstOrch.Generate(context.Background(), validRequest())
		firstErr <- err
	}()
	<-blocker.started

	// Yêu cầu thứ hai của cùng user, chương khác, đến khi lock đang bị giữ
	second := newPipelineFakes()
	secondOrch := NewOrchestrator(second.enricher, second.synthesizer, second.materializer, second.notesGen, second.store, second.linker, lock)
	secondReq := validRequest()
	secondReq.ChapterID = "64a000000000000000000003"

	_, err := secondOrch.Generate(context.Background(), secondReq)
	assert.ErrorIs(t, err, common.ErrGenerationInProgress)
	// Bên bị từ chối dừng ngay sau khi giành lock thất bại
	assert.Equal(t, []string{"exists"}, second.trace)

	// Thả bên thứ nhất chạy tiếp đến hết
	close(blocker.release)
	require.NoError(t, <-firstErr)

	// Đúng một bên giành được lock, và lock tự do sau khi xong
	assert.Equal(t, 1, lock.acquired)
	assert.Equal(t, 1, lock.conflicts)
	assert.False(t, lock.held)
}

func TestGenerate_ThieuUserID(t *testing.T) {
	p := newPipelineFakes()
	req := validRequest()
	req.UserID = ""

	_, err := p.orchestrator().Generate(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
