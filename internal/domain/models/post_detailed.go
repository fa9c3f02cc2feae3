package model

const unknownAuthorName = "Unknown author"

// PostDetailed pairs a post with its author's profile for rendering. It is never persisted.
type PostDetailed struct {
	Post   *Post `json:"post,omitempty"`
	Author *User `json:"author,omitempty"`
}

func (p *PostDetailed) AuthorName() string {
	if p.Author == nil {
		return unknownAuthorName
	}
	if name := p.Author.DisplayName(); name != "" {
		return name
	}
	return unknownAuthorName
}
