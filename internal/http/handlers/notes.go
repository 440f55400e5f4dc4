package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cwaller/notehub/internal/cache"
	"github.com/cwaller/notehub/internal/config"
	"github.com/cwaller/notehub/internal/domain/note"
	"github.com/cwaller/notehub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotesStore interface {
	Create(ctx context.Context, n note.Note) error
	GetByID(ctx context.Context, id string) (note.Note, error)
	ListByOwner(ctx context.Context, owner string, limit int) ([]note.Note, error)
	Update(ctx context.Context, id string, req note.UpdateNoteRequest) (note.Note, error)
	Delete(ctx context.Context, id string) error
}

type NotesHandler struct {
	store     NotesStore
	cache     cache.Notes
	listLimit int
}

func NewNotesHandler(store NotesStore, noteCache cache.Notes, listLimit int) *NotesHandler {
	if listLimit <= 0 {
		listLimit = 100
	}

	return &NotesHandler{
		store:     store,
		cache:     noteCache,
		listLimit: listLimit,
	}
}

func (h *NotesHandler) CreateNote(ctx *gin.Context) {
	owner, ok := middlewares.SubjectFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	var req note.CreateNoteRequest

	if !BindJSON(ctx, &req) {
		return
	}

	n := note.NewFromCreateRequest(owner, req)

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.store.Create(cctx, n)

	if err != nil {
		RespondInternal(ctx, "Could not create note")
		return
	}

	ctx.JSON(http.StatusCreated, n)
}

func (h *NotesHandler) GetNote(ctx *gin.Context) {
	n, ok := h.fetchOwned(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, n)
}

func (h *NotesHandler) ListNotes(ctx *gin.Context) {
	owner, ok := middlewares.SubjectFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	notes, err := h.store.ListByOwner(cctx, owner, h.listLimit)

	if err != nil {
		RespondInternal(ctx, "Could not list notes")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": notes,
		"count": len(notes),
	})
}

func (h *NotesHandler) UpdateNote(ctx *gin.Context) {
	n, ok := h.fetchOwned(ctx)

	if !ok {
		return
	}

	var req note.UpdateNoteRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	updated, err := h.store.Update(cctx, n.ID, req)

	if err != nil {
		if errors.Is(err, note.ErrNotFound) {
			// deleted between fetch and update
			RespondNotFound(ctx, "Note not found")
			return
		}

		RespondInternal(ctx, "Could not update note")
		return
	}

	if h.cache != nil {
		h.cache.Delete(ctx.Request.Context(), n.ID)
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *NotesHandler) DeleteNote(ctx *gin.Context) {
	n, ok := h.fetchOwned(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.store.Delete(cctx, n.ID)

	if err != nil {
		if errors.Is(err, note.ErrNotFound) {
			RespondNotFound(ctx, "Note not found")
			return
		}

		RespondInternal(ctx, "Could not delete note")
		return
	}

	if h.cache != nil {
		h.cache.Delete(ctx.Request.Context(), n.ID)
	}

	ctx.Status(http.StatusNoContent)
}

// fetchOwned runs the guard ladder shared by every single-note operation:
// parse the id, fetch, report 404 for a missing note BEFORE the ownership
// check, then 403 when the note belongs to someone else. The order is part
// of the API contract.
func (h *NotesHandler) fetchOwned(ctx *gin.Context) (note.Note, bool) {
	owner, ok := middlewares.SubjectFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "unauthorized", "Missing identity context")
		return note.Note{}, false
	}

	id := ctx.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		RespondBadRequest(ctx, "malformed_id", "Note id is not a valid identifier.", nil)
		return note.Note{}, false
	}

	if h.cache != nil {
		if n, hit := h.cache.Get(ctx.Request.Context(), id); hit {
			if n.Owner != owner {
				RespondForbidden(ctx, "Note belongs to another user")
				return note.Note{}, false
			}

			return n, true
		}
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	n, err := h.store.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, note.ErrNotFound) {
			RespondNotFound(ctx, "Note not found")
			return note.Note{}, false
		}

		RespondInternal(ctx, "Could not fetch note")
		return note.Note{}, false
	}

	if h.cache != nil {
		h.cache.Set(ctx.Request.Context(), n)
	}

	if n.Owner != owner {
		RespondForbidden(ctx, "Note belongs to another user")
		return note.Note{}, false
	}

	return n, true
}
