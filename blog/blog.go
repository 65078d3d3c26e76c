package blog

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkwell/auth"
	"inkwell/models"
)

type BlogModule struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewBlogModule(db *gorm.DB, log *zap.SugaredLogger) *BlogModule {
	return &BlogModule{db: db, log: log}
}

func (b *BlogModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", b.home)
	router.GET("/about", b.about)
	router.GET("/post/:id", b.showPost)
	router.POST("/post/:id", b.addComment)
	router.GET("/delete-comment/:id/:post_id", auth.RequireAuth, b.deleteComment)

	adminGroup := router.Group("/")
	adminGroup.Use(auth.RequireAdmin(b.db))
	{
		adminGroup.GET("/new-post", b.newPost)
		adminGroup.POST("/new-post", b.createPost)
		adminGroup.GET("/edit-post/:id", b.editPost)
		adminGroup.POST("/edit-post/:id", b.updatePost)
		adminGroup.GET("/delete/:id", b.deletePost)
	}
}

// displayDate is the human-readable stamp used for posts and comments.
func displayDate() string {
	return time.Now().Format("January 02, 2006")
}

func (b *BlogModule) home(c *gin.Context) {
	// No explicit ordering: the home page lists posts in insertion order.
	var posts []models.BlogPost
	if err := b.db.Find(&posts).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": "Could not load posts",
		})
		return
	}

	user, loggedIn := auth.CurrentUser(c, b.db)

	c.HTML(http.StatusOK, "index.html", gin.H{
		"posts":        posts,
		"logged_in":    loggedIn,
		"current_user": user,
		"flashes":      auth.Flashes(c),
	})
}

func (b *BlogModule) about(c *gin.Context) {
	_, loggedIn := auth.CurrentUser(c, b.db)

	c.HTML(http.StatusOK, "about.html", gin.H{
		"logged_in": loggedIn,
	})
}

func (b *BlogModule) getPost(c *gin.Context) (*models.BlogPost, bool) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Post not found"})
		return nil, false
	}

	var post models.BlogPost
	if err := b.db.First(&post, postID).Error; err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Post not found"})
		return nil, false
	}
	return &post, true
}

func (b *BlogModule) showPost(c *gin.Context) {
	post, ok := b.getPost(c)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := b.db.Preload("Commenter").Where("post_id = ?", post.ID).Find(&comments).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": "Could not load comments",
		})
		return
	}

	user, loggedIn := auth.CurrentUser(c, b.db)

	c.HTML(http.StatusOK, "post.html", gin.H{
		"post":         post,
		"bodyHTML":     template.HTML(renderMarkdown(post.Body)),
		"comments":     comments,
		"logged_in":    loggedIn,
		"current_user": user,
		"flashes":      auth.Flashes(c),
	})
}

func (b *BlogModule) addComment(c *gin.Context) {
	post, ok := b.getPost(c)
	if !ok {
		return
	}

	user, loggedIn := auth.CurrentUser(c, b.db)
	if !loggedIn {
		auth.Flash(c, "You need to login or register to comment.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		auth.Flash(c, "Comment text cannot be empty.")
		c.Redirect(http.StatusFound, "/post/"+strconv.Itoa(post.ID))
		return
	}

	comment := models.Comment{
		PostID:      post.ID,
		CommenterID: user.ID,
		Text:        form.Text,
		Date:        displayDate(),
	}

	if err := b.db.Create(&comment).Error; err != nil {
		b.log.Errorw("creating comment", "post_id", post.ID, "err", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": "Could not save your comment",
		})
		return
	}

	c.Redirect(http.StatusFound, "/post/"+strconv.Itoa(post.ID))
}

// deleteComment removes a comment and redirects to the post view named by the
// caller. Only the comment's author or the admin may delete it.
func (b *BlogModule) deleteComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Comment not found"})
		return
	}

	var comment models.Comment
	if err := b.db.First(&comment, commentID).Error; err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Comment not found"})
		return
	}

	user, ok := auth.CurrentUser(c, b.db)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if user.ID != comment.CommenterID && !user.IsAdmin {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	if err := b.db.Delete(&comment).Error; err != nil {
		b.log.Errorw("deleting comment", "comment_id", commentID, "err", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": "Could not delete comment",
		})
		return
	}

	c.Redirect(http.StatusFound, "/post/"+c.Param("post_id"))
}

func (b *BlogModule) newPost(c *gin.Context) {
	c.HTML(http.StatusOK, "make-post.html", gin.H{
		"logged_in": true,
	})
}

func (b *BlogModule) createPost(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "make-post.html", gin.H{
			"error":     "All fields are required and the image must be a valid URL.",
			"form":      form,
			"logged_in": true,
		})
		return
	}

	var existing models.BlogPost
	if err := b.db.Where("title = ?", form.Title).First(&existing).Error; err == nil {
		c.HTML(http.StatusBadRequest, "make-post.html", gin.H{
			"error":     "A post with this title already exists.",
			"form":      form,
			"logged_in": true,
		})
		return
	}

	admin := c.MustGet("current_user").(*models.User)

	post := models.BlogPost{
		AuthorID: admin.ID,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
		Date:     displayDate(),
	}

	if err := b.db.Create(&post).Error; err != nil {
		// The unique index on title is the last line of defense.
		c.HTML(http.StatusBadRequest, "make-post.html", gin.H{
			"error":     "A post with this title already exists.",
			"form":      form,
			"logged_in": true,
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (b *BlogModule) editPost(c *gin.Context) {
	post, ok := b.getPost(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "make-post.html", gin.H{
		"form": PostForm{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			Body:     post.Body,
			ImgURL:   post.ImgURL,
		},
		"is_edit":   true,
		"post_id":   post.ID,
		"logged_in": true,
	})
}

func (b *BlogModule) updatePost(c *gin.Context) {
	post, ok := b.getPost(c)
	if !ok {
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "make-post.html", gin.H{
			"error":     "All fields are required and the image must be a valid URL.",
			"form":      form,
			"is_edit":   true,
			"post_id":   post.ID,
			"logged_in": true,
		})
		return
	}

	if form.Title != post.Title {
		var existing models.BlogPost
		if err := b.db.Where("title = ? AND id <> ?", form.Title, post.ID).First(&existing).Error; err == nil {
			c.HTML(http.StatusBadRequest, "make-post.html", gin.H{
				"error":     "A post with this title already exists.",
				"form":      form,
				"is_edit":   true,
				"post_id":   post.ID,
				"logged_in": true,
			})
			return
		}
	}

	// Only the editable fields change; author and publish date are immutable.
	updates := map[string]interface{}{
		"title":    form.Title,
		"subtitle": form.Subtitle,
		"body":     form.Body,
		"img_url":  form.ImgURL,
	}

	if err := b.db.Model(post).Updates(updates).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": "Could not update post",
		})
		return
	}

	c.Redirect(http.StatusFound, "/post/"+strconv.Itoa(post.ID))
}

// deletePost removes a post and its comments in one transaction so no
// orphaned comment rows survive.
func (b *BlogModule) deletePost(c *gin.Context) {
	post, ok := b.getPost(c)
	if !ok {
		return
	}

	err := b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
	if err != nil {
		b.log.Errorw("deleting post", "post_id", post.ID, "err", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": "Could not delete post",
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}
