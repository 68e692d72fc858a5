package models

import "time"

// User represents a platform member.
type User struct {
	ID           string `bson:"id" json:"id"`
	Username     string `bson:"username" json:"username"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash" json:"-"`
	PhoneNumber  string `bson:"phone_number" json:"phoneNumber,omitempty"`
	ProfileImage string `bson:"profile_image,omitempty" json:"profileImage,omitempty"`

	// Societies the user has joined.
	SocietyIDs []string `bson:"society_ids,omitempty" json:"societyIds,omitempty"`

	// Referral linkage and accumulated stats.
	ReferralCode     string  `bson:"referral_code" json:"referralCode"`
	ReferredBy       string  `bson:"referred_by,omitempty" json:"referredBy,omitempty"`
	TotalReferrals   int     `bson:"total_referrals" json:"totalReferrals"`
	ReferralEarnings float64 `bson:"referral_earnings" json:"referralEarnings"`

	BooksUploaded int `bson:"books_uploaded" json:"booksUploaded"`

	// While set and in the future, the platform waives its commission on
	// this user's lender earnings.
	CommissionFreeUntil *time.Time `bson:"commission_free_until,omitempty" json:"commissionFreeUntil,omitempty"`

	// SHA-256 hash of the currently issued auth token.
	TokenHash string `bson:"token_hash,omitempty" json:"-"`

	Notifications []Notification `bson:"notifications,omitempty" json:"notifications,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// UserRegistrationData carries the fields required to register.
type UserRegistrationData struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	PhoneNumber  string `json:"phoneNumber"`
	ReferralCode string `json:"referralCode,omitempty"`
}

// UserUpdateRequest carries the mutable profile fields.
type UserUpdateRequest struct {
	ID           string `json:"id"`
	Username     string `json:"username,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}
