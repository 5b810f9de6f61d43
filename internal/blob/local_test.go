// AngelaMos | 2026
// local_test.go

package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		fileName string
		suffix   string
	}{
		{"plain", "notice.pdf", "-notice.pdf"},
		{"spaces", "Mining Lease 2024.pdf", "-Mining_Lease_2024.pdf"},
		{"traversal", "../../etc/passwd", "-passwd"},
		{"windows path", `C:\Users\asha\case.docx`, "-case.docx"},
		{"empty", "", "-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := ObjectKey("cases", tt.fileName, now)
			assert.True(t, strings.HasPrefix(key, "cases/2026/03/"), key)
			assert.True(t, strings.HasSuffix(key, tt.suffix), key)
			assert.NotContains(t, key, "..")
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("act.PDF"))
	assert.Equal(t, "application/octet-stream", ContentType("blob"))
}

func TestLocalStorePutAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "http://localhost:3000/files/")
	require.NoError(t, err)
	ctx := context.Background()

	obj, err := store.Put(ctx, "documents", "act.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), obj.Size)
	assert.Equal(t, "act.pdf", obj.FileName)
	assert.Equal(t, "http://localhost:3000/files/"+obj.Key, obj.URL)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(obj.Key)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, store.Delete(ctx, obj.Key))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(obj.Key)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, obj.Key), "deleting twice is not an error")
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	for _, key := range []string{"../outside", "/etc/passwd", "..", "."} {
		assert.Error(t, store.Delete(context.Background(), key), key)
	}
}

func TestLocalStoreHonoursCancellation(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, "cases", "a.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
