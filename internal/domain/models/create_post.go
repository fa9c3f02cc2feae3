package model

type CreatePostDTO struct {
	AuthorID string `json:"author_id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
}
