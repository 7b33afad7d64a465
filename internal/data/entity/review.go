package entity

type Review struct {
	BaseSimple
	TourID     int64  `db:"tour_id"`
	UserID     *int64 `db:"user_id"`
	AuthorName string `db:"author_name"`
	Rating     int    `db:"rating"` // 1-5
	Comment    string `db:"comment"`
}
