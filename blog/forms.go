package blog

// PostForm carries the fields of the new-post and edit-post forms. Every
// field is mandatory and the image must be a syntactically valid URL.
type PostForm struct {
	Title    string `form:"title" binding:"required"`
	Subtitle string `form:"subtitle" binding:"required"`
	Body     string `form:"body" binding:"required"`
	ImgURL   string `form:"img_url" binding:"required,url"`
}

type CommentForm struct {
	Text string `form:"text" binding:"required"`
}
