package request

type BlogRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Slug    string `json:"slug,omitempty" validate:"omitempty,max=200"`
	Excerpt string `json:"excerpt" validate:"max=500"`
	Content string `json:"content" validate:"required"`
	Image   string `json:"image,omitempty"`
	Author  string `json:"author" validate:"required,max=100"`
}

type BlogUpdateRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	BlogRequest
}

type FAQRequest struct {
	Question string `json:"question" validate:"required,max=500"`
	Answer   string `json:"answer" validate:"required"`
	Position int    `json:"position" validate:"gte=0"`
}

type FAQUpdateRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	FAQRequest
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}
