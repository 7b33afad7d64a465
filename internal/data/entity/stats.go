package entity

type StatusCounts struct {
	Pending  int64
	Approved int64
	Rejected int64
}

type LabelCount struct {
	Label string
	Count int64
}

type TourBookings struct {
	TourID   int64
	Title    string
	Bookings int64
}

type RatingCount struct {
	Stars int
	Count int64
}
