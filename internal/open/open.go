// Package open hands a chat export to the user's editor at a given record.
package open

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

// ErrNotEditable is returned for exports that only exist inside a zip.
var ErrNotEditable = errors.New("export is inside an archive; extract it to open in an editor")

// Record opens filePath in $EDITOR (or less) at the line of record index in tl.
func Record(tl timeline.Timeline, index int, filePath string) error {
	if filePath == "" {
		return ErrNotEditable
	}
	if index < 0 || index >= tl.Len() {
		return fmt.Errorf("record %d out of range (0-%d)", index, tl.Len()-1)
	}
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file not found: %s", filePath)
	}

	lineNum := max(tl.At(index).LineNumber, 1)

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := editorCommand(editor, filePath, lineNum)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func editorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"), strings.Contains(editor, "nano"), strings.Contains(editor, "emacs"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}
