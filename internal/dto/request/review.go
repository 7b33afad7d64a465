package request

type CreateReviewRequest struct {
	TourID     int64  `json:"tourId" validate:"required,gt=0"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"required,max=2000"`
	AuthorName string `json:"authorName,omitempty" validate:"omitempty,max=100"`
}
