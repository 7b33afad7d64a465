package entity

import (
	"time"
)

type Blog struct {
	Base
	Title   string `db:"title"`
	Slug    string `db:"slug"`
	Excerpt string `db:"excerpt"`
	Content string `db:"content"` // markdown
	Image   []byte `db:"image"`
	Author  string `db:"author"`
}

type Contact struct {
	BaseSimple
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	Phone     string     `db:"phone"`
	Subject   string     `db:"subject"`
	Message   string     `db:"message"`
	Replied   bool       `db:"replied"`
	RepliedAt *time.Time `db:"replied_at"`
}

type FAQ struct {
	BaseSimple
	Question string `db:"question"`
	Answer   string `db:"answer"`
	Position int    `db:"position"`
}
