package dto

import "github.com/haguru/blogd/internal/models"

type CreatePostRequestDTO struct {
	Title   string `json:"title" mapstructure:"title" validate:"required"`
	Content string `json:"content" mapstructure:"content" validate:"required"`
}

type PostResponseDTO struct {
	Post *models.Post `json:"post"`
}

type PostsResponseDTO struct {
	Posts []models.Post `json:"posts"`
}
