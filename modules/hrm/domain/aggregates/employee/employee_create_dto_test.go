package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDTO_Ok(t *testing.T) {
	tests := []struct {
		name string
		dto  CreateDTO
		want map[string]string
	}{
		{
			name: "valid",
			dto:  CreateDTO{FullName: "Jane Doe", Email: "jane@example.com", Department: "Engineering"},
			want: map[string]string{},
		},
		{
			name: "all missing",
			dto:  CreateDTO{},
			want: map[string]string{
				"full_name":  "Full name is required",
				"email":      "Email is required",
				"department": "Department is required",
			},
		},
		{
			name: "whitespace only counts as missing",
			dto:  CreateDTO{FullName: "   ", Email: " ", Department: "\t"},
			want: map[string]string{
				"full_name":  "Full name is required",
				"email":      "Email is required",
				"department": "Department is required",
			},
		},
		{
			name: "short name and department",
			dto:  CreateDTO{FullName: " J ", Email: "j@x.io", Department: "H"},
			want: map[string]string{
				"full_name":  "Full name must be at least 2 characters",
				"department": "Department must be at least 2 characters",
			},
		},
		{
			name: "two character name, bad email, no department",
			dto:  CreateDTO{FullName: "Jo", Email: "bad", Department: ""},
			want: map[string]string{
				"email":      "Invalid email format",
				"department": "Department is required",
			},
		},
		{
			name: "email with spaces",
			dto:  CreateDTO{FullName: "Jane", Email: "jane doe@example.com", Department: "HR"},
			want: map[string]string{
				"email": "Invalid email format",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := tt.dto
			errs, ok := dto.Ok(context.Background())
			assert.Equal(t, tt.want, errs)
			assert.Equal(t, len(tt.want) == 0, ok)
		})
	}
}

func TestCreateDTO_OkTrims(t *testing.T) {
	dto := CreateDTO{FullName: "  Jane Doe ", Email: " jane@example.com ", Department: " HR "}
	_, ok := dto.Ok(context.Background())
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", dto.FullName)
	assert.Equal(t, "jane@example.com", dto.Email)
	assert.Equal(t, "HR", dto.Department)
}

func TestValidate_LeavesDraftUntouched(t *testing.T) {
	dto := CreateDTO{FullName: " Jane ", Email: "jane@example.com", Department: "HR"}
	assert.Empty(t, Validate(context.Background(), dto))
	assert.Equal(t, " Jane ", dto.FullName)
}

func TestMatchers(t *testing.T) {
	e := Employee{EmployeeID: "EMP007", FullName: "Ada Lovelace", Email: "ada@math.org", Department: "Engineering"}

	assert.True(t, MatchesSearch(e, "lovelace"))
	assert.True(t, MatchesSearch(e, "MATH.ORG"))
	assert.True(t, MatchesSearch(e, "emp007"))
	assert.True(t, MatchesSearch(e, " engin "))
	assert.True(t, MatchesSearch(e, ""))
	assert.False(t, MatchesSearch(e, "sales"))

	assert.True(t, MatchesPicker(e, "ada"))
	assert.True(t, MatchesPicker(e, "EMP0"))
	assert.False(t, MatchesPicker(e, "math.org"))
}
