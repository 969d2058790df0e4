package dynamo

// DynamoDB attribute names used in update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldLastModifiedDate = "last_modified_date"
	fieldLastLogin        = "last_login"
	fieldAttempts         = "attempts"
	fieldIsUsed           = "is_used"
	fieldUsedAt           = "used_at"
	fieldExpiresAt        = "expires_at"
	fieldCounterValue     = "counter_value"
)
