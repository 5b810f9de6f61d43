// AngelaMos | 2026
// support_test.go

package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
)

func TestSupportFeedback(t *testing.T) {
	api := newFakeAPI()
	rec := &notify.Recorder{}
	s := NewSupport(api, rec)

	_, err := s.SubmitFeedback(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	fb, err := s.SubmitFeedback(context.Background(), " very useful ")
	require.NoError(t, err)
	assert.Equal(t, "very useful", fb.FeedbackText)
	assert.Equal(t, 1, api.count("submit-feedback"))

	last, _ := rec.Last()
	assert.Equal(t, notify.Success, last.Kind)
}

func TestSupportContact(t *testing.T) {
	tests := []struct {
		name  string
		in    client.ContactInput
		valid bool
	}{
		{"ok", client.ContactInput{Name: "Asha", Email: "asha@x.in", Message: "hi"}, true},
		{"missing name", client.ContactInput{Email: "asha@x.in", Message: "hi"}, false},
		{"bad email", client.ContactInput{Name: "Asha", Email: "asha", Message: "hi"}, false},
		{"blank message", client.ContactInput{Name: "Asha", Email: "asha@x.in", Message: " "}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			s := NewSupport(api, nil)

			_, err := s.SubmitContact(context.Background(), tt.in)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, 1, api.count("submit-contact"))
				return
			}
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, api.count("submit-contact"))
		})
	}
}

func TestVisitorsTrackOnce(t *testing.T) {
	api := newFakeAPI()
	v := NewVisitors(api, "")
	assert.Len(t, v.ID(), 21)

	stats, err := v.Track(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVisits)

	_, err = v.Track(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, api.count("track"))
	assert.Equal(t, 1, api.count("stats"))
	assert.Equal(t, int64(1), v.Stats().UniqueVisitors)
}
