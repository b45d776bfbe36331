package mindmap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"you_education/internal/common"
	"you_education/internal/provider"
)

// fakeLLM trả về một chuỗi cố định hoặc lỗi
type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Complete(_ context.Context, _ string, userPrompt string, _ int32) (string, error) {
	f.prompts = append(f.prompts, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const validTreeJSON = `{
	"title": "Chương 1",
	"isEndNode": false,
	"subtopics": [
		{
			"title": "Chủ đề 1",
			"isEndNode": true,
			"resources": [
				{"type": "youtube_link", "data": {"url": "https://www.youtube.com/watch?v=abc"}, "description": "video dễ hiểu"},
				{"type": "notes", "data": {"description": "ghi chú tổng hợp"}}
			]
		}
	]
}`

func TestExtractJSON_KhoiFencedJson(t *testing.T) {
	raw := "Đây là sơ đồ:\n```json\n{\"title\": \"x\"}\n```\nHết."
	got, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"title": "x"}`, got)
}

func TestExtractJSON_KhoiFencedKhongNhan(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"
	got, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, got)
}

func TestExtractJSON_JSONTran(t *testing.T) {
	got, err := ExtractJSON(`  {"a": {"b": 2}}  `)
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 2}}`, got)
}

func TestExtractJSON_JSONGiuaVanBan(t *testing.T) {
	raw := `Kết quả như sau: {"a": 1, "b": {"c": 2}} mong là đúng ý.`
	got, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1, "b": {"c": 2}}`, got)
}

func TestExtractJSON_NgoacTrongChuoi(t *testing.T) {
	raw := `{"title": "dấu } trong chuỗi", "x": 1}`
	got, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestExtractJSON_KhongCoJSON(t *testing.T) {
	_, err := ExtractJSON("xin lỗi, tôi không thể giúp")
	assert.Error(t, err)

	_, err = ExtractJSON("")
	assert.Error(t, err)

	_, err = ExtractJSON(`{"chua dong ngoac": 1`)
	assert.Error(t, err)
}

func TestSynthesize_CayHopLe(t *testing.T) {
	llm := &fakeLLM{response: "```json\n" + validTreeJSON + "\n```"}
	s := NewSynthesizer(llm)

	tree, err := s.Synthesize(context.Background(), "Chương 1", []EnrichedTopic{
		{Title: "Chủ đề 1", Videos: []provider.VideoCandidate{
			{Title: "Video hay", URL: "https://www.youtube.com/watch?v=abc", Duration: "12:30", ViewCount: "1000", LikeCount: "100"},
		}},
	})
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, "Chương 1", tree.Title)

	// Mọi resource được gán id mới
	leaf := tree.Subtopics[0]
	require.Len(t, leaf.Resources, 2)
	assert.NotEmpty(t, leaf.Resources[0].ID)
	assert.NotEmpty(t, leaf.Resources[1].ID)
	assert.NotEqual(t, leaf.Resources[0].ID, leaf.Resources[1].ID)

	// Prompt chứa thông tin video để LLM chọn
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Video hay")
	assert.Contains(t, llm.prompts[0], "https://www.youtube.com/watch?v=abc")
	assert.Contains(t, llm.prompts[0], "12:30")
}

func TestSynthesize_ChuDeKhongCoVideo(t *testing.T) {
	llm := &fakeLLM{response: validTreeJSON}
	s := NewSynthesizer(llm)

	_, err := s.Synthesize(context.Background(), "Chương 1", []EnrichedTopic{
		{Title: "Chủ đề trống", Videos: nil},
	})
	require.NoError(t, err)
	assert.Contains(t, llm.prompts[0], "không có video tham khảo")
}

func TestSynthesize_UngVienTheChoKhongVaoPrompt(t *testing.T) {
	// Chủ đề chỉ có ứng viên thế chỗ: url sentinel không được đưa cho LLM chọn
	llm := &fakeLLM{response: validTreeJSON}
	s := NewSynthesizer(llm)

	_, err := s.Synthesize(context.Background(), "Chương 1", []EnrichedTopic{
		{Title: "Chủ đề lỗi", Videos: []provider.VideoCandidate{placeholderCandidate("Chủ đề lỗi")}},
	})
	require.NoError(t, err)
	assert.Contains(t, llm.prompts[0], "không có video tham khảo")
	assert.NotContains(t, llm.prompts[0], placeholderVideoURL)
}

func TestSynthesize_PhanHoiKhongPhaiJSON(t *testing.T) {
	llm := &fakeLLM{response: "tôi không chắc về chủ đề này"}
	s := NewSynthesizer(llm)

	_, err := s.Synthesize(context.Background(), "Chương 1", []EnrichedTopic{{Title: "x"}})
	assert.ErrorIs(t, err, common.ErrSynthesisInvalidShape)
}

func TestSynthesize_SaiCauTruc(t *testing.T) {
	// Node nhánh có resources là sai bất biến
	llm := &fakeLLM{response: `{"title": "Gốc", "isEndNode": false, "subtopics": [{"title": "Con", "isEndNode": true}], "resources": [{"type": "notes", "data": {"description": "x"}}]}`}
	s := NewSynthesizer(llm)

	_, err := s.Synthesize(context.Background(), "Chương 1", []EnrichedTopic{{Title: "x"}})
	assert.ErrorIs(t, err, common.ErrSynthesisInvalidShape)
}

func TestSynthesize_LLMLoi(t *testing.T) {
	llm := &fakeLLM{err: provider.NewProviderError("gemini", "GenerateContent", errors.New("timeout"))}
	s := NewSynthesizer(llm)

	_, err := s.Synthesize(context.Background(), "Chương 1", []EnrichedTopic{{Title: "x"}})
	require.Error(t, err)
	// Lỗi adapter không bị đổi thành lỗi cấu trúc
	assert.False(t, errors.Is(err, common.ErrSynthesisInvalidShape), fmt.Sprintf("lỗi LLM bị map nhầm: %v", err))
}

func TestSynthesize_ThieuTieuDeChuong(t *testing.T) {
	s := NewSynthesizer(&fakeLLM{response: validTreeJSON})
	_, err := s.Synthesize(context.Background(), "", []EnrichedTopic{{Title: "x"}})
	assert.Error(t, err)
}
