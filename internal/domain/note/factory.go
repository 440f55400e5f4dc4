package note

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(owner string, req CreateNoteRequest) Note {
	now := time.Now().UTC()

	return Note{
		ID:        uuid.NewString(),
		Owner:     owner,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
