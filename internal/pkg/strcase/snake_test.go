package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":             "",
		"Email":        "email",
		"TotalBudget":  "total_budget",
		"userID":       "user_id",
		"HTTPServer":   "http_server",
		"Project2Name": "project2_name",
		"ID":           "id",
	}

	for in, want := range tests {
		assert.Equal(t, want, ToLowerSnake(in), in)
	}
}
