package post_http

import (
	"net/http"

	"inkwell-blog-service/internal/infrastructure/inbound/http/render"
)

const maxFormBytes = 1 << 20

func parsePostForm(w http.ResponseWriter, r *http.Request) (render.PostForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return render.PostForm{}, err
	}
	return render.PostForm{
		Title: r.PostForm.Get("title"),
		Body:  r.PostForm.Get("body"),
	}, nil
}
