package response

import (
	"time"

	"travel-agency/internal/data/entity"
)

type ReviewResponse struct {
	ID         int64     `json:"id"`
	TourID     int64     `json:"tourId"`
	AuthorName string    `json:"authorName"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ReviewToResponse(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		TourID:     r.TourID,
		AuthorName: r.AuthorName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
