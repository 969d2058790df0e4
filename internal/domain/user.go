package domain

import "time"

// User is a registered account. UserID is a human-readable sequential
// identifier in the form USER### allocated from the counters table.
type User struct {
	UserID           string     `json:"userId" dynamodbav:"user_id"`
	FullName         string     `json:"fullName" dynamodbav:"full_name"`
	Email            string     `json:"email" dynamodbav:"email"`
	PhoneNumber      string     `json:"phoneNumber" dynamodbav:"phone_number"`
	Age              *int       `json:"age,omitempty" dynamodbav:"age"`
	CreatedDate      time.Time  `json:"-" dynamodbav:"created_date"`
	LastModifiedDate time.Time  `json:"-" dynamodbav:"last_modified_date"`
	LastLogin        *time.Time `json:"-" dynamodbav:"last_login"`
}

type CreateUserRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,numeric"`
	Age         *int   `json:"age" validate:"omitempty,gte=0,lte=150"`
}

type UpdateUserRequest struct {
	FullName    *string `json:"fullName"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,numeric"`
	Age         *int    `json:"age" validate:"omitempty,gte=0,lte=150"`
}
