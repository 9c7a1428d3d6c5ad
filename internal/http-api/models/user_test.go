package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserAccessors(t *testing.T) {
	u := User{IsSuperuser: 1, IsStaff: 0, IsActive: 1, Email: StringPtr("a@x.com")}

	assert.True(t, u.Superuser())
	assert.False(t, u.Staff())
	assert.True(t, u.Active())
	assert.Equal(t, "a@x.com", u.EmailValue())
	assert.Equal(t, "", u.FirstNameValue())
	assert.Equal(t, "", u.LastLoginValue())
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	assert.Equal(t, "x", *StringPtr("x"))
}

func TestNow(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC)
	assert.Equal(t, "2024-03-09 07:05:01", Now(ts))
}
