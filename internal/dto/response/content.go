package response

import (
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/utils"
)

type BlogResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml"`
	Image       string    `json:"image,omitempty"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type FAQResponse struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

type ContactResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	Replied   bool       `json:"replied"`
	RepliedAt *time.Time `json:"repliedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Helper converters
func BlogToResponse(b *entity.Blog, html string) BlogResponse {
	return BlogResponse{
		ID:          b.ID,
		Title:       b.Title,
		Slug:        b.Slug,
		Excerpt:     b.Excerpt,
		Content:     b.Content,
		ContentHTML: html,
		Image:       utils.EncodeImage(b.Image),
		Author:      b.Author,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func FAQToResponse(f *entity.FAQ) FAQResponse {
	return FAQResponse{
		ID:       f.ID,
		Question: f.Question,
		Answer:   f.Answer,
		Position: f.Position,
	}
}

func ContactToResponse(c *entity.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Message:   c.Message,
		Replied:   c.Replied,
		RepliedAt: c.RepliedAt,
		CreatedAt: c.CreatedAt,
	}
}
