package utils_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"

	"github.com/agendabeleza/backend/internal/utils"
)

func TestIsDuplicateKeyError(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}

	assert.True(t, utils.IsDuplicateKeyError(dup))
	assert.True(t, utils.IsDuplicateKeyError(fmt.Errorf("insert: %w", dup)))
	assert.False(t, utils.IsDuplicateKeyError(&mysql.MySQLError{Number: 1452}))
	assert.False(t, utils.IsDuplicateKeyError(errors.New("Duplicate entry")))
	assert.False(t, utils.IsDuplicateKeyError(nil))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", utils.TruncateString("short", 10))
	assert.Equal(t, "Manicu...", utils.TruncateString("Manicure completa", 9))
	assert.Equal(t, "Mar", utils.TruncateString("Marcação", 3))
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"user@example.com", "u**r@example.com"},
		{"maria@example.com", "m***a@example.com"},
		{"ab@example.com", "**@example.com"},
		{"not-an-email", "not-an-email"},
		{"@example.com", "@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.MaskEmail(tt.in))
		})
	}
}
