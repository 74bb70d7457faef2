package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelToSnake(t *testing.T) {
	assert.Equal(t, "first_name", CamelToSnake("FirstName"))
	assert.Equal(t, "username", CamelToSnake("Username"))
	assert.Equal(t, "confirmation_code", CamelToSnake("ConfirmationCode"))
	assert.Equal(t, "title_id", CamelToSnake("TitleID"))
}
