// AngelaMos | 2026
// args_test.go

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"  login  ", []string{"login"}},
		{`profile address="12 MG Road" bio='mining lawyer'`, []string{"profile", "address=12 MG Road", "bio=mining lawyer"}},
		{`note-add title=a\ b content=""`, []string{"note-add", "title=a b", "content="}},
		{"calc\tmineral=Limestone", []string{"calc", "mineral=Limestone"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := splitWords(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitWordsUnterminated(t *testing.T) {
	_, err := splitWords(`contact message="hello`)
	assert.ErrorIs(t, err, errUnterminatedQuote)
}

func TestKeyValues(t *testing.T) {
	kv, rest := keyValues([]string{"n1", "Title=Section 21", "content=a=b", "=x"})
	assert.Equal(t, map[string]string{"title": "Section 21", "content": "a=b"}, kv)
	assert.Equal(t, []string{"n1", "=x"}, rest)
}

func TestRedact(t *testing.T) {
	assert.Equal(t,
		"login email=a@b.co password=*** Confirm=***",
		redact("login email=a@b.co password=hunter2 Confirm=hunter2"),
	)
}

func TestFormatMinor(t *testing.T) {
	assert.Equal(t, "1500.00", formatMinor(150000))
	assert.Equal(t, "0.05", formatMinor(5))
	assert.Equal(t, "-1.50", formatMinor(-150))
}
