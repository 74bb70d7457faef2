package models

import (
	"time"

	"yamdb/proj/internal/domain/fields"
	"yamdb/proj/internal/domain/roles"
)

type User struct {
	ID          int64      `json:"-" db:"id"`
	Username    string     `json:"username" db:"username"`
	Email       string     `json:"email" db:"email"`
	FirstName   string     `json:"first_name" db:"first_name"`
	LastName    string     `json:"last_name" db:"last_name"`
	Bio         string     `json:"bio" db:"bio"`
	Role        roles.Role `json:"role" db:"role"`
	IsSuperuser bool       `json:"-" db:"is_superuser"`
	CreatedAt   time.Time  `json:"-" db:"created_at"`
}

// AnonymousUser is put into the request context when no credential was sent.
var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == nil || u == AnonymousUser
}

func (u *User) Capabilities() roles.Capabilities {
	if u.IsAnonymous() {
		return roles.Capabilities{}
	}
	return roles.CapabilitiesOf(u.Role, u.IsSuperuser)
}

// Term is a piece of catalogue reference data addressed by slug.
type Term struct {
	ID   int64  `json:"-" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

type (
	Genre    = Term
	Category = Term
)

type Title struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Year        int           `json:"year"`
	Description string        `json:"description"`
	Genres      []Genre       `json:"genre"`
	Category    *Category     `json:"category"`
	Rating      fields.Rating `json:"rating"`
}

type Review struct {
	ID       int64     `json:"id" db:"id"`
	TitleID  int64     `json:"-" db:"title_id"`
	AuthorID int64     `json:"-" db:"author_id"`
	Author   string    `json:"author" db:"author"`
	Text     string    `json:"text" db:"text"`
	Score    int       `json:"score" db:"score"`
	PubDate  time.Time `json:"pub_date" db:"pub_date"`
}

type Comment struct {
	ID       int64     `json:"id" db:"id"`
	ReviewID int64     `json:"-" db:"review_id"`
	AuthorID int64     `json:"-" db:"author_id"`
	Author   string    `json:"author" db:"author"`
	Text     string    `json:"text" db:"text"`
	PubDate  time.Time `json:"pub_date" db:"pub_date"`
}
