package mindmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Node {
	return &Node{
		Title: "Chương 1: Dao động cơ",
		Subtopics: []*Node{
			{
				Title: "Dao động điều hòa",
				Subtopics: []*Node{
					{
						Title:     "Phương trình dao động",
						IsEndNode: true,
						Resources: []Resource{
							{ID: "r1", Type: ResourceTypeVideo, Data: ResourceData{URL: "https://www.youtube.com/watch?v=abc"}},
							{ID: "r2", Type: ResourceTypeNotes, Data: ResourceData{Description: "Tổng hợp công thức x, v, a"}},
						},
					},
					{
						Title:     "Năng lượng dao động",
						IsEndNode: true,
						Resources: []Resource{
							{ID: "r3", Type: ResourceTypeNotes, Data: ResourceData{Description: "Động năng, thế năng, cơ năng"}},
						},
					},
				},
			},
			{
				Title:     "Con lắc lò xo",
				IsEndNode: true,
			},
		},
	}
}

func TestNodeValidate_CayHopLe(t *testing.T) {
	assert.NoError(t, sampleTree().Validate())
}

func TestNodeValidate_NhanhKhongCoSubtopic(t *testing.T) {
	tree := &Node{Title: "Gốc", IsEndNode: false}
	err := tree.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ít nhất một subtopic")
}

func TestNodeValidate_LaCoSubtopic(t *testing.T) {
	tree := &Node{
		Title:     "Gốc",
		IsEndNode: true,
		Subtopics: []*Node{{Title: "Con", IsEndNode: true}},
	}
	assert.Error(t, tree.Validate())
}

func TestNodeValidate_NhanhCoResource(t *testing.T) {
	tree := &Node{
		Title:     "Gốc",
		Resources: []Resource{{ID: "r1", Type: ResourceTypeNotes}},
		Subtopics: []*Node{{Title: "Con", IsEndNode: true}},
	}
	err := tree.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "không được có resources")
}

func TestNodeValidate_ResourceTypeKhongHopLe(t *testing.T) {
	tree := &Node{
		Title:     "Gốc",
		IsEndNode: true,
		Resources: []Resource{{ID: "r1", Type: "pdf_link"}},
	}
	assert.Error(t, tree.Validate())
}

func TestNodeValidate_ChapNhanNhanCu(t *testing.T) {
	// Nhãn md_notes hợp lệ khi validate, được chuẩn hóa lúc vật chất hóa
	tree := &Node{
		Title:     "Gốc",
		IsEndNode: true,
		Resources: []Resource{{ID: "r1", Type: "md_notes", Data: ResourceData{Description: "x"}}},
	}
	assert.NoError(t, tree.Validate())
}

func TestWalkLeaves_DungThuTu(t *testing.T) {
	var titles []string
	err := sampleTree().WalkLeaves(func(leaf *Node) error {
		titles = append(titles, leaf.Title)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Phương trình dao động", "Năng lượng dao động", "Con lắc lò xo"}, titles)
}

func TestClone_BanSaoDocLap(t *testing.T) {
	original := sampleTree()
	clone := original.Clone()

	clone.Subtopics[0].Subtopics[0].Resources[0].Data.URL = "https://example.com/changed"
	clone.Subtopics[0].Title = "Đã sửa"

	assert.Equal(t, "https://www.youtube.com/watch?v=abc", original.Subtopics[0].Subtopics[0].Resources[0].Data.URL)
	assert.Equal(t, "Dao động điều hòa", original.Subtopics[0].Title)
}
