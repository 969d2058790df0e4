package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat_DayMonthYearOrder(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 9, 5, 1, 0, time.UTC)
	assert.Equal(t, "07-03-2024 09:05:01", Format(ts))
}

func TestFormatPtr_Nil(t *testing.T) {
	assert.Equal(t, "", FormatPtr(nil))
	ts := time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "31-12-2024 23:59:59", FormatPtr(&ts))
}
