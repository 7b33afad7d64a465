package response

import (
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/utils"
)

type TourSummaryResponse struct {
	ID           int64           `json:"id"`
	Code         string          `json:"code"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Type         entity.TourType `json:"type"`
	DurationDays int             `json:"durationDays"`
	Places       []string        `json:"places"`
	MainImage    string          `json:"mainImage,omitempty"`
	MinPrice     *float64        `json:"minPrice"`
	NextDate     *string         `json:"nextDate"`
	AvgRating    float64         `json:"avgRating"`
	ReviewCount  int64           `json:"reviewCount"`
}

// TourListResponse is the paginated search result.
type TourListResponse struct {
	Tours      []TourSummaryResponse `json:"tours"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"totalPages"`
}

type TourDateResponse struct {
	ID         int64   `json:"id"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Price      float64 `json:"price"`
	SpotsTotal int     `json:"spotsTotal"`
	SpotsLeft  int     `json:"spotsLeft"`
}

type ProgramDayResponse struct {
	DayNumber   int      `json:"dayNumber"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Places      []string `json:"places"`
	Included    []string `json:"included"`
}

type TourDetailResponse struct {
	ID           int64                `json:"id"`
	Code         string               `json:"code"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Type         entity.TourType      `json:"type"`
	DurationDays int                  `json:"durationDays"`
	Places       []string             `json:"places"`
	MainImage    string               `json:"mainImage,omitempty"`
	Gallery      []string             `json:"gallery"`
	Highlights   []string             `json:"highlights"`
	Program      []ProgramDayResponse `json:"program"`
	Dates        []TourDateResponse   `json:"dates"`
	AvgRating    float64              `json:"avgRating"`
	ReviewCount  int64                `json:"reviewCount"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

type DestinationResponse struct {
	Place     string  `json:"place"`
	TourCount int64   `json:"tourCount"`
	MinPrice  float64 `json:"minPrice"`
}

// Helper converters
func TourSummaryToResponse(t *entity.TourSummary) TourSummaryResponse {
	resp := TourSummaryResponse{
		ID:           t.ID,
		Code:         t.Code,
		Title:        t.Title,
		Description:  t.Description,
		Type:         t.Type,
		DurationDays: t.DurationDays,
		Places:       nonNil(t.Places),
		MainImage:    utils.EncodeImage(t.MainImage),
		MinPrice:     t.MinPrice,
		AvgRating:    t.AvgRating,
		ReviewCount:  t.ReviewCount,
	}
	if t.NextDate != nil {
		next := t.NextDate.Format(utils.DateLayout)
		resp.NextDate = &next
	}
	return resp
}

func TourDateToResponse(d entity.AvailableDate) TourDateResponse {
	return TourDateResponse{
		ID:         d.ID,
		StartDate:  d.StartDate.Format(utils.DateLayout),
		EndDate:    d.EndDate.Format(utils.DateLayout),
		Price:      d.Price,
		SpotsTotal: d.SpotsTotal,
		SpotsLeft:  d.SpotsLeft,
	}
}

func TourDetailToResponse(t *entity.TourAggregate, avgRating float64, reviewCount int64) *TourDetailResponse {
	resp := &TourDetailResponse{
		ID:           t.ID,
		Code:         t.Code,
		Title:        t.Title,
		Description:  t.Description,
		Type:         t.Type,
		DurationDays: t.DurationDays,
		Places:       nonNil(t.Places),
		MainImage:    utils.EncodeImage(t.MainImage),
		Gallery:      make([]string, 0, len(t.Gallery)),
		Highlights:   nonNil(t.Highlights),
		Program:      make([]ProgramDayResponse, 0, len(t.Program)),
		Dates:        make([]TourDateResponse, 0, len(t.Dates)),
		AvgRating:    avgRating,
		ReviewCount:  reviewCount,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}

	for _, image := range t.Gallery {
		resp.Gallery = append(resp.Gallery, utils.EncodeImage(image))
	}
	for _, day := range t.Program {
		resp.Program = append(resp.Program, ProgramDayResponse{
			DayNumber:   day.DayNumber,
			Title:       day.Title,
			Description: day.Description,
			Places:      nonNil(day.Places),
			Included:    nonNil(day.Included),
		})
	}
	for _, d := range t.Dates {
		resp.Dates = append(resp.Dates, TourDateToResponse(d))
	}

	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
