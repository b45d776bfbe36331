package mindmap

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"you_education/internal/logger"
	"you_education/internal/provider"
)

// synthesisMaxTokens là trần token cho một lần tổng hợp sơ đồ
const synthesisMaxTokens = 8192

const synthesisSystemPrompt = `Bạn là chuyên gia thiết kế sơ đồ tư duy cho học sinh.
Nhiệm vụ: từ tiêu đề chương và danh sách chủ đề kèm video tham khảo, hãy xây dựng
một sơ đồ tư duy dạng cây giúp học sinh nắm toàn bộ chương.

Quy tắc cấu trúc, bắt buộc tuân thủ:
- Trả về DUY NHẤT một object JSON, không kèm văn bản giải thích.
- Node gốc: {"title": <tiêu đề chương>, "isEndNode": false, "subtopics": [...]}.
- Node nhánh: có "subtopics" không rỗng, KHÔNG có "resources".
- Node lá: {"title": ..., "isEndNode": true, "resources": [...]}, KHÔNG có "subtopics".
- Mỗi node lá có tài nguyên theo tỉ lệ khoảng 2 video : 1 ghi chú.
- Tài nguyên video: {"type": "youtube_link", "data": {"url": <url>}, "description": <lý do chọn video này>}.
  Chỉ dùng url có trong danh sách video được cung cấp, ưu tiên video có lượt xem
  và lượt thích cao, thời lượng phù hợp để tự học.
- Tài nguyên ghi chú: {"type": "notes", "data": {"description": <mô tả chi tiết nội dung cần có trong ghi chú>}}.
  Mô tả phải đủ cụ thể để viết được một bài ghi chú hoàn chỉnh.
- Toàn bộ title và description viết bằng tiếng Việt.`

// Synthesizer gọi LLM để dựng cây sơ đồ từ các chủ đề đã làm giàu
type Synthesizer struct {
	llm provider.LLMCompleter
}

// NewSynthesizer tạo Synthesizer trên một LLM client
func NewSynthesizer(llm provider.LLMCompleter) *Synthesizer {
	return &Synthesizer{llm: llm}
}

// Synthesize dựng cây sơ đồ tư duy cho một chương.
// Kết quả đã được gán id cho từng resource và qua kiểm tra bất biến cấu trúc.
func (s *Synthesizer) Synthesize(ctx context.Context, chapterTitle string, topics []EnrichedTopic) (*Node, error) {
	userPrompt, err := buildSynthesisPrompt(chapterTitle, topics)
	if err != nil {
		return nil, err
	}

	raw, err := s.llm.Complete(ctx, synthesisSystemPrompt, userPrompt, synthesisMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("gọi LLM tổng hợp sơ đồ thất bại: %w", err)
	}

	jsonText, err := ExtractJSON(raw)
	if err != nil {
		logger.GetErrorLogger().WithError(err).
			WithField("chapter", chapterTitle).
			Error("🧠 [MINDMAP] Không trích xuất được JSON từ phản hồi LLM")
		return nil, newSynthesisError(err)
	}

	var root Node
	if err := json.Unmarshal([]byte(jsonText), &root); err != nil {
		return nil, newSynthesisError(fmt.Errorf("parse JSON sơ đồ thất bại: %w", err))
	}

	assignResourceIDs(&root)

	if err := root.Validate(); err != nil {
		return nil, newSynthesisError(err)
	}

	return &root, nil
}

// buildSynthesisPrompt dựng prompt người dùng từ chương và danh sách chủ đề
func buildSynthesisPrompt(chapterTitle string, topics []EnrichedTopic) (string, error) {
	if chapterTitle == "" {
		return "", fmt.Errorf("thiếu tiêu đề chương")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Chương: %s\n\nDanh sách chủ đề và video tham khảo:\n", chapterTitle)
	for i, topic := range topics {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, topic.Title)
		if !hasRealVideos(topic) {
			b.WriteString("   (không có video tham khảo, chỉ dùng tài nguyên ghi chú cho chủ đề này)\n")
			continue
		}
		for _, v := range topic.Videos {
			fmt.Fprintf(&b, "   - %s | %s | thời lượng %s | %s lượt xem | %s lượt thích\n",
				v.Title, v.URL, v.Duration, v.ViewCount, v.LikeCount)
		}
	}
	return b.String(), nil
}

// hasRealVideos báo một chủ đề có video thật hay chỉ có ứng viên thế chỗ.
// Url sentinel không được đưa vào prompt làm video tham khảo.
func hasRealVideos(topic EnrichedTopic) bool {
	for _, v := range topic.Videos {
		if v.URL != placeholderVideoURL {
			return true
		}
	}
	return false
}

// assignResourceIDs gán uuid cho mọi resource chưa có id
func assignResourceIDs(n *Node) {
	if n == nil {
		return
	}
	for i := range n.Resources {
		if n.Resources[i].ID == "" {
			n.Resources[i].ID = uuid.NewString()
		}
	}
	for _, sub := range n.Subtopics {
		assignResourceIDs(sub)
	}
}

// ExtractJSON lấy object JSON đầu tiên từ phản hồi dạng text của LLM,
// dùng chung cho mọi giai đoạn cần parse đầu ra có cấu trúc.
// Ưu tiên khối ```json ... ```; nếu không có thì quét object cân bằng ngoặc
// đầu tiên, bỏ qua ngoặc nằm trong chuỗi.
func ExtractJSON(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("phản hồi LLM rỗng")
	}

	if start := strings.Index(text, "```json"); start >= 0 {
		rest := text[start+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			text = strings.TrimSpace(rest[:end])
		}
	} else if start := strings.Index(text, "```"); start >= 0 {
		rest := text[start+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			text = strings.TrimSpace(rest[:end])
		}
	}

	open := strings.IndexByte(text, '{')
	if open < 0 {
		return "", fmt.Errorf("phản hồi LLM không chứa object JSON")
	}

	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[open : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("object JSON trong phản hồi LLM không đóng ngoặc")
}
