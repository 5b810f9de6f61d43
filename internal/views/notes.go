// AngelaMos | 2026
// notes.go

package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/model"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
)

type NotesAPI interface {
	GetNotes(ctx context.Context) ([]model.Note, error)
	CreateNote(ctx context.Context, in client.NoteInput) (model.Note, error)
	UpdateNote(ctx context.Context, id string, in client.NoteInput) (model.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// Notes holds the signed-in user's private notes.
type Notes struct {
	api      NotesAPI
	notifier notify.Notifier

	mu    sync.RWMutex
	notes []model.Note
}

func NewNotes(api NotesAPI, notifier notify.Notifier) *Notes {
	return &Notes{api: api, notifier: orDiscard(notifier)}
}

func (n *Notes) Mount(ctx context.Context) error {
	notes, err := n.api.GetNotes(ctx)
	if err != nil {
		report(n.notifier, err, "Failed to load notes.")
		return fmt.Errorf("load notes: %w", err)
	}
	n.mu.Lock()
	n.notes = notes
	n.mu.Unlock()
	return nil
}

func (n *Notes) Notes() []model.Note {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]model.Note(nil), n.notes...)
}

func (n *Notes) Create(ctx context.Context, in client.NoteInput) (model.Note, error) {
	if err := n.check(&in); err != nil {
		return model.Note{}, err
	}
	note, err := n.api.CreateNote(ctx, in)
	if err != nil {
		report(n.notifier, err, "Failed to save note.")
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}
	n.notifier.Notify(notify.Notice{Kind: notify.Success, Message: "Note saved."})
	return note, n.Mount(ctx)
}

func (n *Notes) Update(ctx context.Context, id string, in client.NoteInput) (model.Note, error) {
	if err := n.check(&in); err != nil {
		return model.Note{}, err
	}
	note, err := n.api.UpdateNote(ctx, id, in)
	if err != nil {
		report(n.notifier, err, "Failed to update note.")
		return model.Note{}, fmt.Errorf("update note %s: %w", id, err)
	}
	return note, n.Mount(ctx)
}

func (n *Notes) Delete(ctx context.Context, id string) error {
	if err := n.api.DeleteNote(ctx, id); err != nil {
		report(n.notifier, err, "Failed to delete note.")
		return fmt.Errorf("delete note %s: %w", id, err)
	}

	n.mu.Lock()
	kept := n.notes[:0:0]
	for _, note := range n.notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	n.notes = kept
	n.mu.Unlock()
	return nil
}

func (n *Notes) check(in *client.NoteInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return invalid(n.notifier, "Please enter a title for your note.")
	}
	if strings.TrimSpace(in.Content) == "" {
		return invalid(n.notifier, "Note content cannot be empty.")
	}
	return nil
}
