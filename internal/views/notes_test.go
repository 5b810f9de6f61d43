// AngelaMos | 2026
// notes_test.go

package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
)

func TestNotesLifecycle(t *testing.T) {
	api := newFakeAPI()
	n := NewNotes(api, nil)
	ctx := context.Background()

	require.NoError(t, n.Mount(ctx))
	assert.Empty(t, n.Notes())

	note, err := n.Create(ctx, client.NoteInput{Title: " Section 21 ", Content: "penalties"})
	require.NoError(t, err)
	assert.Equal(t, "Section 21", note.Title)
	require.Len(t, n.Notes(), 1)

	_, err = n.Update(ctx, note.ID, client.NoteInput{Title: "Section 21", Content: "penalties and fines"})
	require.NoError(t, err)
	assert.Equal(t, "penalties and fines", n.Notes()[0].Content)

	require.NoError(t, n.Delete(ctx, note.ID))
	assert.Empty(t, n.Notes())
}

func TestNotesValidation(t *testing.T) {
	api := newFakeAPI()
	rec := &notify.Recorder{}
	n := NewNotes(api, rec)

	_, err := n.Create(context.Background(), client.NoteInput{Title: "", Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = n.Create(context.Background(), client.NoteInput{Title: "x", Content: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, api.count("create-note"))
	assert.Len(t, rec.Notices(), 2)
}
