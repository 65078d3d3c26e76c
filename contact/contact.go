package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Sender is the outbound-mail collaborator.
type Sender interface {
	SendContactMessage(name, from, phone, message string) error
}

type ContactForm struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Phone   string `form:"phone"`
	Message string `form:"msg" binding:"required"`
}

type ContactModule struct {
	mail Sender
	log  *zap.SugaredLogger
}

func NewContactModule(mail Sender, log *zap.SugaredLogger) *ContactModule {
	return &ContactModule{mail: mail, log: log}
}

func (m *ContactModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/contact", m.contactPage)
	router.POST("/contact", m.contactPost)
}

func (m *ContactModule) contactPage(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"msg_sent": false,
	})
}

// contactPost sends the message synchronously; the request blocks until the
// mail transaction completes and a relay failure is shown to the submitter.
func (m *ContactModule) contactPost(c *gin.Context) {
	var form ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "contact.html", gin.H{
			"error":    "Please fill in your name, a valid email and a message.",
			"form":     form,
			"msg_sent": false,
		})
		return
	}

	if err := m.mail.SendContactMessage(form.Name, form.Email, form.Phone, form.Message); err != nil {
		m.log.Errorw("sending contact message", "err", err)
		c.HTML(http.StatusBadGateway, "contact.html", gin.H{
			"error":    "Your message could not be sent. Try again later.",
			"form":     form,
			"msg_sent": false,
		})
		return
	}

	c.HTML(http.StatusOK, "contact.html", gin.H{
		"msg_sent": true,
	})
}
