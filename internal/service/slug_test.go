package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Operating Systems", "operating-systems"},
		{"Databases: Exam Notes 2026!", "databases-exam-notes-2026"},
		{"  spaced   out  ", "spaced-out"},
		{"T120B145", "t120b145"},
		{"ąčę unicode žž", "unicode"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}
