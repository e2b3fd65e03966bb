package contact

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"watch-storefront/internal/infra/mailer"

	"github.com/gin-gonic/gin"
)

type Sender interface {
	Configured() bool
	Send(ctx context.Context, msg mailer.Message) error
}

type Request struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,max=5000"`
}

var bodyTmpl = template.Must(template.New("contact").Parse(`<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2 style="color: #333;">Nuovo messaggio dal form di contatto</h2>
  <p><strong>Nome:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Messaggio:</strong></p>
  <p style="background-color: #f5f5f5; padding: 15px; border-radius: 5px;">{{.Message}}</p>
</div>`))

type Handler struct {
	sender Sender
	log    *slog.Logger
}

func NewHandler(sender Sender, log *slog.Logger) *Handler {
	return &Handler{sender: sender, log: log}
}

// Submit forwards a visitor's message to the shop mailbox.
func (h *Handler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	if h.sender == nil || !h.sender.Configured() {
		h.log.ErrorContext(ctx, "missing email configuration")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := buildMessage(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nell'invio dell'email"})
		return
	}

	if err := h.sender.Send(ctx, msg); err != nil {
		h.log.ErrorContext(ctx, "contact email failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nell'invio dell'email"})
		return
	}

	h.log.InfoContext(ctx, "contact email sent", "reply_to", req.Email)
	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

func buildMessage(req Request) (mailer.Message, error) {
	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, req); err != nil {
		return mailer.Message{}, err
	}
	return mailer.Message{
		Subject: "Nuovo messaggio da " + req.Name,
		HTML:    buf.String(),
		ReplyTo: req.Email,
	}, nil
}
