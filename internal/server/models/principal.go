package models

import "time"

// Principal is an authenticable identity. Users and admins share the shape
// but live in separate tables and never authenticate as each other.
type Principal struct {
	ID             string
	Email          string
	HashedPassword string
	FirstName      string
	LastName       *string
	CreatedAt      time.Time
}

// FullName joins first and last name, omitting an absent last name.
func (p *Principal) FullName() string {
	if p.LastName == nil || *p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + *p.LastName
}
