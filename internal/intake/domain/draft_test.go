package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDraft_Defaults(t *testing.T) {
	draft := NewDraft("user-1")

	assert.Equal(t, StepMin, draft.Step)
	assert.Equal(t, StatusEditing, draft.Status)
	assert.Equal(t, UrgencyNormal, draft.Urgency)
	assert.Empty(t, draft.UploadedImages)
}

func TestDraft_StepBounds(t *testing.T) {
	draft := NewDraft("user-1")

	// retreat from step 1 stays at 1
	draft.Retreat()
	assert.Equal(t, 1, draft.Step)

	for i := 0; i < 10; i++ {
		draft.Advance()
	}
	// advance past step 4 stays at 4
	assert.Equal(t, 4, draft.Step)

	draft.Retreat()
	assert.Equal(t, 3, draft.Step)
}

func TestDraft_RemoveImage(t *testing.T) {
	draft := NewDraft("user-1")
	draft.UploadedImages = []UploadedFile{
		{ID: 42, RemoteURL: "https://files.example/42.jpg", OriginalFilename: "kitchen.jpg"},
		{ID: 43, RemoteURL: "https://files.example/43.jpg", OriginalFilename: "bath.jpg"},
	}

	assert.True(t, draft.RemoveImage(42))
	assert.Equal(t, []UploadedFile{{ID: 43, RemoteURL: "https://files.example/43.jpg", OriginalFilename: "bath.jpg"}}, draft.UploadedImages)

	assert.False(t, draft.RemoveImage(42))
}

func TestDraft_ImageIDs_PreservesOrder(t *testing.T) {
	draft := NewDraft("user-1")
	draft.UploadedImages = []UploadedFile{{ID: 7}, {ID: 3}, {ID: 9}}

	assert.Equal(t, []int64{7, 3, 9}, draft.ImageIDs())
}
