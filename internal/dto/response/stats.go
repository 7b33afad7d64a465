package response

type BookingStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type RevenueStats struct {
	Total   float64     `json:"total"`
	ByMonth [12]float64 `json:"byMonth"`
}

type SeasonalRevenue struct {
	Spring float64 `json:"spring"`
	Summer float64 `json:"summer"`
	Autumn float64 `json:"autumn"`
	Winter float64 `json:"winter"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type PlaceCount struct {
	Place string `json:"place"`
	Count int64  `json:"count"`
}

type TopTour struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Bookings int64  `json:"bookings"`
}

type BucketCount struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}

type StarCount struct {
	Stars int   `json:"stars"`
	Count int64 `json:"count"`
}

type StatsResponse struct {
	Range               string          `json:"range"`
	Year                int             `json:"year"`
	Bookings            BookingStats    `json:"bookings"`
	Revenue             RevenueStats    `json:"revenue"`
	SeasonalRevenue     SeasonalRevenue `json:"seasonalRevenue"`
	TourTypes           []TypeCount     `json:"tourTypes"`
	PopularDestinations []PlaceCount    `json:"popularDestinations"`
	TopTours            []TopTour       `json:"topTours"`
	Demographics        []BucketCount   `json:"demographics"`
	Ratings             []StarCount     `json:"ratings"`
	AverageRating       float64         `json:"averageRating"`
	TotalTours          int64           `json:"totalTours"`
	TotalTravelers      int64           `json:"totalTravelers"`
}
