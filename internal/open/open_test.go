package open

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatlens/internal/parse"
	"github.com/Zuo-Peng/chatlens/internal/sentiment"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"nvim", []string{"nvim", "+7", "chat.txt"}},
		{"/usr/bin/vim", []string{"/usr/bin/vim", "+7", "chat.txt"}},
		{"code", []string{"code", "--goto", "chat.txt:7"}},
		{"less", []string{"less", "+7", "chat.txt"}},
		{"nano", []string{"nano", "+7", "chat.txt"}},
		{"subl", []string{"subl", "chat.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			assert.Equal(t, tt.want, editorCommand(tt.editor, "chat.txt", 7).Args)
		})
	}
}

func TestRecord_Errors(t *testing.T) {
	raw, err := parse.Parse("1/2/23, 10:00 AM - Alice: hi\n")
	require.NoError(t, err)
	tl, _ := timeline.Build(raw, sentiment.NewLexicon())

	assert.ErrorIs(t, Record(tl, 0, ""), ErrNotEditable)
	assert.ErrorContains(t, Record(tl, 5, "chat.txt"), "out of range")
	assert.ErrorContains(t, Record(tl, 0, filepath.Join(t.TempDir(), "missing.txt")), "file not found")
}

func TestRecord_RunsEditor(t *testing.T) {
	raw, err := parse.Parse("1/2/23, 10:00 AM - Alice: hi\n1/2/23, 10:01 AM - Bob: yo\n")
	require.NoError(t, err)
	tl, _ := timeline.Build(raw, sentiment.NewLexicon())

	p := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	t.Setenv("EDITOR", "true")

	assert.NoError(t, Record(tl, 1, p))
}
