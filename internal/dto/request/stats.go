package request

type StatsQuery struct {
	Range string `json:"range" validate:"oneof=week month quarter year"`
	Year  int    `json:"year" validate:"gte=2000,lte=2100"`
}
