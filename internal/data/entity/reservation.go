package entity

import (
	"time"
)

type ReservationStatus string

const (
	ReservationPending  ReservationStatus = "pending"
	ReservationApproved ReservationStatus = "approved"
	ReservationRejected ReservationStatus = "rejected"
)

type Reservation struct {
	BaseSimple
	TourID int64             `db:"tour_id"`
	DateID int64             `db:"date_id"`
	UserID *int64            `db:"user_id"`
	Status ReservationStatus `db:"status"`
}

type Traveler struct {
	ID             int64     `db:"id"`
	ReservationID  int64     `db:"reservation_id"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	BirthDate      time.Time `db:"birth_date"`
	Nationality    string    `db:"nationality"`
	PassportNumber string    `db:"passport_number"`
	PassportExpiry time.Time `db:"passport_expiry"`
	Address        string    `db:"address"`
	City           string    `db:"city"`
	Country        string    `db:"country"`
	ZipCode        string    `db:"zip_code"`
}

// ReservationDetail is a reservation joined with its tour and date.
type ReservationDetail struct {
	Reservation
	TourTitle     string    `db:"tour_title"`
	StartDate     time.Time `db:"start_date"`
	EndDate       time.Time `db:"end_date"`
	Price         float64   `db:"price"`
	TravelerCount int       `db:"traveler_count"`
	Travelers     []Traveler
}
