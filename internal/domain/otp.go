package domain

import "time"

// OTPRecord is the single one-time code row for an email address.
// PK: email. ExpiresAt is a Unix timestamp used as DynamoDB TTL, so expired
// rows are never deleted inline — lookups must filter on it instead.
type OTPRecord struct {
	Email     string     `json:"email" dynamodbav:"email"`
	OtpID     string     `json:"otp_id" dynamodbav:"otp_id"`
	Code      string     `json:"otp" dynamodbav:"otp"`
	Attempts  int        `json:"attempts" dynamodbav:"attempts"`
	CreatedAt time.Time  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64      `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	IsUsed    bool       `json:"is_used" dynamodbav:"is_used"`
	UsedAt    *time.Time `json:"used_at,omitempty" dynamodbav:"used_at"`
}

// Active reports whether the record can still accept a submission.
func (r *OTPRecord) Active(now time.Time) bool {
	return !r.IsUsed && now.Unix() < r.ExpiresAt
}
