// models/user.go
package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleTherapist Role = "therapist"
)

// User is the profile document stored next to the Firebase Auth account. ID is the Firebase uid.
type User struct {
	ID            string    `bson:"id" json:"id"`
	Email         string    `bson:"email" json:"email"`
	Role          Role      `bson:"role" json:"role"`
	FullName      string    `bson:"fullName" json:"fullName"`
	Age           string    `bson:"age" json:"age"`
	ContactNumber string    `bson:"contactNumber" json:"contactNumber"`
	ProfileImage  string    `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Experience    string    `bson:"experience,omitempty" json:"experience,omitempty"`
	HospitalName  string    `bson:"hospitalName,omitempty" json:"hospitalName,omitempty"`
	FCMToken      string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Role          Role   `json:"role" binding:"required,role"`
	FullName      string `json:"fullName"`
	Age           string `json:"age"`
	ContactNumber string `json:"contactNumber"`
}

// ProfileUpdate holds the editable profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	FullName      *string `json:"fullName"`
	Age           *string `json:"age"`
	ContactNumber *string `json:"contactNumber"`
	ProfileImage  *string `json:"profileImage"`
	Experience    *string `json:"experience"`
	HospitalName  *string `json:"hospitalName"`
}

type FCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
