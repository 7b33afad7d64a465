package request

type TravelerRequest struct {
	FirstName      string `json:"firstName" validate:"required,max=100"`
	LastName       string `json:"lastName" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,max=30"`
	BirthDate      string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Nationality    string `json:"nationality" validate:"required"`
	PassportNumber string `json:"passportNumber" validate:"required,max=30"`
	PassportExpiry string `json:"passportExpiry" validate:"required,datetime=2006-01-02"`
	Address        string `json:"address" validate:"required"`
	City           string `json:"city" validate:"required"`
	Country        string `json:"country" validate:"required"`
	ZipCode        string `json:"zipCode" validate:"required,max=20"`
}

type CreateReservationRequest struct {
	TourID    int64             `json:"tourId" validate:"required,gt=0"`
	DateID    int64             `json:"dateId" validate:"required,gt=0"`
	Travelers []TravelerRequest `json:"travelers" validate:"required,min=1,dive"`
}

type ReservationIDRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}
