package request

import "time"

type TourDateRequest struct {
	// ID is set for departures that already exist on update
	ID        int64   `json:"id,omitempty"`
	StartDate string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	Price     float64 `json:"price" validate:"gt=0"`
	Spots     int     `json:"spots" validate:"gte=0"`
}

type ProgramDayRequest struct {
	DayNumber   int      `json:"dayNumber" validate:"gte=1"`
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description"`
	Places      []string `json:"places" validate:"dive,required"`
	Included    []string `json:"included" validate:"dive,required"`
}

type TourRequest struct {
	Code         string              `json:"code" validate:"required,max=50"`
	Title        string              `json:"title" validate:"required,max=200"`
	Description  string              `json:"description" validate:"required"`
	Type         string              `json:"type" validate:"required,oneof=Cultural Adventure Desert Coastal Mountain City"`
	DurationDays int                 `json:"durationDays" validate:"gte=1"`
	Places       []string            `json:"places" validate:"required,min=1,dive,required"`
	MainImage    string              `json:"mainImage,omitempty"`
	Gallery      []string            `json:"gallery,omitempty"`
	Highlights   []string            `json:"highlights,omitempty" validate:"dive,required"`
	Program      []ProgramDayRequest `json:"program,omitempty" validate:"dive"`
	Dates        []TourDateRequest   `json:"dates" validate:"required,min=1,dive"`
}

type TourUpdateRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	TourRequest
}

// TourListQuery is parsed from the query string of GET /api/tours/get.
type TourListQuery struct {
	Page       int
	Limit      int
	SearchTerm string
	SortBy     string
	Type       string
	DateFrom   *time.Time
	DateTo     *time.Time
	DaysMin    *int
	DaysMax    *int
	BudgetMin  *float64
	BudgetMax  *float64
}
