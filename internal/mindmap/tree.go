// Package mindmap chứa pipeline sinh sơ đồ tư duy: làm giàu chủ đề bằng video,
// tổng hợp cây qua LLM, vật chất hóa ghi chú, sinh nội dung ghi chú và điều phối
// toàn bộ quá trình với lock theo user.
package mindmap

import (
	"fmt"

	"you_education/internal/common"
)

// ResourceType là loại tài nguyên gắn ở node lá
type ResourceType string

const (
	// ResourceTypeVideo là link video YouTube
	ResourceTypeVideo ResourceType = "youtube_link"
	// ResourceTypeNotes là tham chiếu tới một bản ghi Note đã persist
	ResourceTypeNotes ResourceType = "notes"

	// legacyNotesType là nhãn cũ của notes, được chuẩn hóa một lần khi vật chất hóa
	legacyNotesType ResourceType = "md_notes"
)

// ResourceData là payload của một resource.
// URL dùng cho video; ID tham chiếu Note đã persist; Description là field staging
// chỉ tồn tại trước khi vật chất hóa và bị xóa khi cây được hoàn thiện.
type ResourceData struct {
	URL         string `json:"url,omitempty" bson:"url,omitempty"`
	ID          string `json:"id,omitempty" bson:"id,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Resource là một tài nguyên học tập gắn ở node lá.
// Description cấp resource là biến thể cũ của Data.Description, cũng bị xóa khi hoàn thiện.
type Resource struct {
	ID          string       `json:"id" bson:"id"`
	Type        ResourceType `json:"type" bson:"type" validate:"resource_type"`
	Data        ResourceData `json:"data" bson:"data"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
}

// Node là một node trong cây sơ đồ tư duy.
// Bất biến: node hoặc là nhánh (isEndNode = false, có >=1 subtopic, không có resource)
// hoặc là lá (isEndNode = true, có >=0 resource, không có subtopic).
type Node struct {
	Title     string     `json:"title" bson:"title"`
	IsEndNode bool       `json:"isEndNode" bson:"isEndNode"`
	Subtopics []*Node    `json:"subtopics,omitempty" bson:"subtopics,omitempty" validate:"omitempty,dive"`
	Resources []Resource `json:"resources,omitempty" bson:"resources,omitempty" validate:"omitempty,dive"`
}

// Clone trả về bản sao sâu của cây
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		Title:     n.Title,
		IsEndNode: n.IsEndNode,
	}
	if n.Subtopics != nil {
		clone.Subtopics = make([]*Node, len(n.Subtopics))
		for i, sub := range n.Subtopics {
			clone.Subtopics[i] = sub.Clone()
		}
	}
	if n.Resources != nil {
		clone.Resources = make([]Resource, len(n.Resources))
		copy(clone.Resources, n.Resources)
	}
	return clone
}

// WalkLeaves duyệt cây theo chiều sâu (subtopics theo thứ tự mảng) và gọi visit
// trên mỗi node lá. Thứ tự duyệt là deterministic để log/test tái lập được.
func (n *Node) WalkLeaves(visit func(leaf *Node) error) error {
	if n == nil {
		return nil
	}
	if n.IsEndNode {
		return visit(n)
	}
	for _, sub := range n.Subtopics {
		if err := sub.WalkLeaves(visit); err != nil {
			return err
		}
	}
	return nil
}

// Validate kiểm tra bất biến nhánh/lá trên toàn cây.
// Trả về lỗi mô tả đường dẫn node vi phạm đầu tiên.
func (n *Node) Validate() error {
	return n.validateAt("")
}

func (n *Node) validateAt(path string) error {
	if n == nil {
		return fmt.Errorf("node nil tại %q", path)
	}
	if n.Title == "" {
		return fmt.Errorf("node thiếu title tại %q", path)
	}
	nodePath := path + "/" + n.Title

	if n.IsEndNode {
		if len(n.Subtopics) > 0 {
			return fmt.Errorf("node lá %q không được có subtopics", nodePath)
		}
		for i, res := range n.Resources {
			if res.Type != ResourceTypeVideo && res.Type != ResourceTypeNotes && res.Type != legacyNotesType {
				return fmt.Errorf("resource %d của node %q có type không hợp lệ: %q", i, nodePath, res.Type)
			}
		}
		return nil
	}

	if len(n.Subtopics) == 0 {
		return fmt.Errorf("node nhánh %q phải có ít nhất một subtopic", nodePath)
	}
	if len(n.Resources) > 0 {
		return fmt.Errorf("node nhánh %q không được có resources", nodePath)
	}
	for _, sub := range n.Subtopics {
		if err := sub.validateAt(nodePath); err != nil {
			return err
		}
	}
	return nil
}

// newSynthesisError bọc lỗi shape/parse thành lỗi tổng hợp (fatal cho cả lần chạy)
func newSynthesisError(detail error) error {
	return fmt.Errorf("%w: %v", common.ErrSynthesisInvalidShape, detail)
}
