package scan

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chat = "1/2/23, 10:00 AM - Alice: Hello world\n"

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func writeZip(t *testing.T, path string, entries map[string]string, order ...string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(entries[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestRead_Text(t *testing.T) {
	p := filepath.Join(t.TempDir(), "WhatsApp Chat.txt")
	writeFile(t, p, chat)

	src, text, err := Read(p)
	require.NoError(t, err)
	assert.Equal(t, KindText, src.Kind)
	assert.Equal(t, chat, text)
	assert.Equal(t, p, src.Display())
	assert.Equal(t, p, src.EditablePath())
}

func TestRead_Zip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "export.zip")
	writeZip(t, p, map[string]string{
		"IMG-0001.jpg":          "\xff\xd8\xff",
		"WhatsApp Chat.txt":     chat,
		"WhatsApp Chat (2).txt": "ignored",
	}, "IMG-0001.jpg", "WhatsApp Chat.txt", "WhatsApp Chat (2).txt")

	src, text, err := Read(p)
	require.NoError(t, err)
	assert.Equal(t, KindZip, src.Kind)
	assert.Equal(t, "WhatsApp Chat.txt", src.Entry)
	assert.Equal(t, chat, text)
	assert.Equal(t, p+"!WhatsApp Chat.txt", src.Display())
	assert.Empty(t, src.EditablePath())
}

func TestRead_ZipPrefersChatEntry(t *testing.T) {
	tests := []struct {
		name  string
		order []string
		want  string
	}{
		{"ios", []string{"notes.txt", "_chat.txt"}, "_chat.txt"},
		{"android", []string{"shared/readme.txt", "WhatsApp Chat with Bob.txt"}, "WhatsApp Chat with Bob.txt"},
		{"fallback", []string{"IMG-0001.jpg", "notes.txt", "other.txt"}, "notes.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "export.zip")
			entries := map[string]string{}
			for _, name := range tt.order {
				entries[name] = "doc " + name
			}
			entries[tt.want] = chat
			writeZip(t, p, entries, tt.order...)

			src, text, err := Read(p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, src.Entry)
			assert.Equal(t, chat, text)
		})
	}
}

func setMaxExportSize(t *testing.T, n int64) {
	t.Helper()
	old := maxExportSize
	maxExportSize = n
	t.Cleanup(func() { maxExportSize = old })
}

func TestRead_TooLargeIsAnError(t *testing.T) {
	body := chat + "1/2/23, 10:01 AM - Bob: LAST\n"
	setMaxExportSize(t, int64(len(chat)))

	t.Run("text", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "chat.txt")
		writeFile(t, p, body)
		_, text, err := Read(p)
		assert.ErrorIs(t, err, ErrExportTooLarge)
		assert.Empty(t, text)
	})
	t.Run("dir", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "chat.txt"), body)
		_, _, err := Read(dir)
		assert.ErrorIs(t, err, ErrExportTooLarge)
	})
	t.Run("zip", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "export.zip")
		writeZip(t, p, map[string]string{"_chat.txt": body}, "_chat.txt")
		_, _, err := Read(p)
		assert.ErrorIs(t, err, ErrExportTooLarge)
	})
	t.Run("at limit", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "chat.txt")
		writeFile(t, p, chat)
		_, text, err := Read(p)
		require.NoError(t, err)
		assert.Equal(t, chat, text)
	})
}

func TestRead_ZipWithoutText(t *testing.T) {
	p := filepath.Join(t.TempDir(), "export.zip")
	writeZip(t, p, map[string]string{"a.jpg": "x"}, "a.jpg")

	_, _, err := Read(p)
	assert.ErrorIs(t, err, ErrNoChatFile)
}

func TestRead_DirPicksNewest(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.txt")
	newer := filepath.Join(dir, "nested", "new.txt")
	writeFile(t, old, "old")
	writeFile(t, newer, chat)
	writeFile(t, filepath.Join(dir, ".hidden", "x.txt"), "hidden")
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	src, text, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, KindDir, src.Kind)
	assert.Equal(t, newer, src.Entry)
	assert.Equal(t, chat, text)
	assert.Equal(t, newer, src.EditablePath())

	files, err := ListChats(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestRead_EmptyDir(t *testing.T) {
	_, _, err := Read(t.TempDir())
	assert.ErrorIs(t, err, ErrNoChatFile)
}

func TestRead_Missing(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
