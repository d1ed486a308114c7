package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateMode_Valid(t *testing.T) {
	assert.True(t, DateUTC.Valid())
	assert.True(t, DateLocal.Valid())
	assert.False(t, DateMode("Europe/Paris").Valid())
	assert.False(t, DateMode("").Valid())
}
