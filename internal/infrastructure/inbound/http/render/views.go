package render

import model "inkwell-blog-service/internal/domain/models"

type PostForm struct {
	Title string
	Body  string
}

type FeedView struct {
	Posts []*model.PostDetailed
}

type DashboardView struct {
	Posts []*model.Post
	Form  PostForm
	Error string
}

type PostView struct {
	Post    *model.PostDetailed
	IsOwner bool
}

type EditView struct {
	Post  *model.Post
	Form  PostForm
	Error string
}

type ErrorView struct {
	Status     int
	StatusText string
	Message    string
}
