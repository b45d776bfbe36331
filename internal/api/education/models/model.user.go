// Package models - các model thuộc domain education.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User định nghĩa mô hình người dùng của hệ thống học tập
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Password  string             `json:"-" bson:"password,omitempty"`
	Salt      string             `json:"-" bson:"salt,omitempty"`
	AvatarURL string             `json:"avatarUrl" bson:"avatarUrl"`
	Token     string             `json:"token" bson:"token"`
	IsBlock   bool               `json:"-" bson:"isBlock"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
