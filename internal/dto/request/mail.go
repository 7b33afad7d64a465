package request

type ReplyMailRequest struct {
	ContactID int64  `json:"contactId" validate:"required,gt=0"`
	Subject   string `json:"subject" validate:"required,max=200"`
	Message   string `json:"message" validate:"required"`
}

type ApproveMailRequest struct {
	ReservationID int64 `json:"reservationId" validate:"required,gt=0"`
}

type RejectMailRequest struct {
	ReservationID int64  `json:"reservationId" validate:"required,gt=0"`
	Reason        string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}
