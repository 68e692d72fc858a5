package models

import "time"

// Society approval states.
const (
	SocietyStatusPending  = "pending"
	SocietyStatusApproved = "approved"
	SocietyStatusRejected = "rejected"
)

// Society is a community unit (residential complex, school, office) that
// scopes book visibility and membership.
type Society struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Code           string    `bson:"code" json:"code"`
	ApartmentCount int       `bson:"apartment_count" json:"apartmentCount"`
	MemberCount    int       `bson:"member_count" json:"memberCount"`
	BookCount      int       `bson:"book_count" json:"bookCount"`
	Status         string    `bson:"status" json:"status"`
	RequestedBy    string    `bson:"requested_by" json:"requestedBy"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

// SocietyCreateRequest is the payload for requesting a new society.
type SocietyCreateRequest struct {
	Name           string `json:"name"`
	ApartmentCount int    `json:"apartmentCount"`
}
