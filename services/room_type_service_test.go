package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePrimaryKey(t *testing.T) {
	newIDs := []uint{101, 102, 103}

	tests := []struct {
		name   string
		key    string
		wantID uint
		wantOK bool
	}{
		{"existing image", "existing-7", 7, true},
		{"first new image", "new-0", 101, true},
		{"last new image", "new-2", 103, true},
		{"new index out of range", "new-3", 0, false},
		{"existing id zero", "existing-0", 0, false},
		{"empty key", "", 0, false},
		{"unknown prefix", "old-5", 0, false},
		{"not a number", "existing-abc", 0, false},
		{"negative index", "new--1", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := resolvePrimaryKey(tt.key, newIDs)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
