package response

import (
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/utils"
)

type TravelerResponse struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	BirthDate      string `json:"birthDate"`
	Nationality    string `json:"nationality"`
	PassportNumber string `json:"passportNumber"`
	PassportExpiry string `json:"passportExpiry"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Country        string `json:"country"`
	ZipCode        string `json:"zipCode"`
}

type ReservationResponse struct {
	ID            int64                    `json:"id"`
	Reference     string                   `json:"reference"`
	TourID        int64                    `json:"tourId"`
	TourTitle     string                   `json:"tourTitle"`
	DateID        int64                    `json:"dateId"`
	StartDate     string                   `json:"startDate"`
	EndDate       string                   `json:"endDate"`
	UserID        *int64                   `json:"userId"`
	Status        entity.ReservationStatus `json:"status"`
	Price         float64                  `json:"price"`
	TravelerCount int                      `json:"travelerCount"`
	TotalPrice    float64                  `json:"totalPrice"`
	Travelers     []TravelerResponse       `json:"travelers"`
	CreatedAt     time.Time                `json:"createdAt"`
}

type CreatedReservationResponse struct {
	ID         int64                    `json:"id"`
	Reference  string                   `json:"reference"`
	Status     entity.ReservationStatus `json:"status"`
	TotalPrice float64                  `json:"totalPrice"`
}

// Helper converters
func TravelerToResponse(t entity.Traveler) TravelerResponse {
	return TravelerResponse{
		ID:             t.ID,
		FirstName:      t.FirstName,
		LastName:       t.LastName,
		Email:          t.Email,
		Phone:          t.Phone,
		BirthDate:      t.BirthDate.Format(utils.DateLayout),
		Nationality:    t.Nationality,
		PassportNumber: t.PassportNumber,
		PassportExpiry: t.PassportExpiry.Format(utils.DateLayout),
		Address:        t.Address,
		City:           t.City,
		Country:        t.Country,
		ZipCode:        t.ZipCode,
	}
}

func ReservationToResponse(d *entity.ReservationDetail) ReservationResponse {
	resp := ReservationResponse{
		ID:            d.ID,
		Reference:     utils.BookingReference(d.ID, d.CreatedAt),
		TourID:        d.TourID,
		TourTitle:     d.TourTitle,
		DateID:        d.DateID,
		StartDate:     d.StartDate.Format(utils.DateLayout),
		EndDate:       d.EndDate.Format(utils.DateLayout),
		UserID:        d.UserID,
		Status:        d.Status,
		Price:         d.Price,
		TravelerCount: d.TravelerCount,
		TotalPrice:    d.Price * float64(d.TravelerCount),
		Travelers:     make([]TravelerResponse, 0, len(d.Travelers)),
		CreatedAt:     d.CreatedAt,
	}
	for _, t := range d.Travelers {
		resp.Travelers = append(resp.Travelers, TravelerToResponse(t))
	}
	return resp
}
