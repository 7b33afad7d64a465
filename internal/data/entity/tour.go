package entity

import (
	"time"
)

type TourType string

const (
	TourTypeCultural  TourType = "Cultural"
	TourTypeAdventure TourType = "Adventure"
	TourTypeDesert    TourType = "Desert"
	TourTypeCoastal   TourType = "Coastal"
	TourTypeMountain  TourType = "Mountain"
	TourTypeCity      TourType = "City"
)

type Tour struct {
	Base
	Code         string   `db:"code"`
	Title        string   `db:"title"`
	Description  string   `db:"description"`
	Type         TourType `db:"type"`
	DurationDays int      `db:"duration_days"`
	Places       []string `db:"places"`
	MainImage    []byte   `db:"main_image"`
}

// AvailableDate is one departure of a tour with its own price and inventory.
type AvailableDate struct {
	ID         int64     `db:"id"`
	TourID     int64     `db:"tour_id"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	Price      float64   `db:"price"`
	SpotsTotal int       `db:"spots_total"`
	SpotsLeft  int       `db:"spots_left"`
}

type ProgramDay struct {
	ID          int64    `db:"id"`
	TourID      int64    `db:"tour_id"`
	DayNumber   int      `db:"day_number"`
	Title       string   `db:"title"`
	Description string   `db:"description"`
	Places      []string `db:"places"`
	Included    []string `db:"included"`
}

type Highlight struct {
	ID       int64  `db:"id"`
	TourID   int64  `db:"tour_id"`
	Position int    `db:"position"`
	Text     string `db:"text"`
}

type GalleryImage struct {
	ID       int64  `db:"id"`
	TourID   int64  `db:"tour_id"`
	Position int    `db:"position"`
	Image    []byte `db:"image"`
}

// TourAggregate is a tour with everything owned by it.
type TourAggregate struct {
	Tour
	Dates      []AvailableDate
	Program    []ProgramDay
	Highlights []string
	Gallery    [][]byte
}

// TourSummary is one row of the search query.
type TourSummary struct {
	Tour
	MinPrice    *float64   `db:"min_price"`
	NextDate    *time.Time `db:"next_date"`
	AvgRating   float64    `db:"avg_rating"`
	ReviewCount int64      `db:"review_count"`
}

type Destination struct {
	Place     string  `db:"place"`
	TourCount int64   `db:"tour_count"`
	MinPrice  float64 `db:"min_price"`
}
