package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizQuestion là một câu hỏi trắc nghiệm trong bộ quiz
type QuizQuestion struct {
	Question      string   `json:"question" bson:"question"`
	Options       []string `json:"options" bson:"options"`
	CorrectOption int      `json:"correctOption" bson:"correctOption"`
	Explanation   string   `json:"explanation,omitempty" bson:"explanation,omitempty"`
}

// Quiz định nghĩa bộ câu hỏi trắc nghiệm sinh từ ghi chú của một chương
type Quiz struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ChapterID primitive.ObjectID `json:"chapterId" bson:"chapterId" index:"single"`
	Title     string             `json:"title" bson:"title"`
	Questions []QuizQuestion     `json:"questions" bson:"questions"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
