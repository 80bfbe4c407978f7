// Package scan finds the chat export text behind a user-supplied path: a
// plain .txt export, a WhatsApp .zip export, or a directory of exports.
package scan

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrNoChatFile is returned when a zip or directory holds no .txt export.
	ErrNoChatFile = errors.New("no chat export (.txt) found")
	// ErrExportTooLarge is returned instead of analysing a truncated export.
	ErrExportTooLarge = errors.New("chat export too large")
)

type Kind string

const (
	KindText Kind = "text"
	KindZip  Kind = "zip"
	KindDir  Kind = "dir"
)

// maxExportSize caps how much of an export is read into memory.
var maxExportSize int64 = 256 << 20

type Source struct {
	Path  string // what the user passed
	Kind  Kind
	Entry string // file inside the zip or directory that holds the chat
	Mtime int64
	Size  int64
}

// Display names the chat file for messages and history rows.
func (s Source) Display() string {
	if s.Kind == KindText || s.Entry == "" {
		return s.Path
	}
	if s.Kind == KindDir {
		return s.Entry
	}
	return s.Path + "!" + s.Entry
}

// EditablePath is the on-disk file an editor can open, or "" for zip entries.
func (s Source) EditablePath() string {
	switch s.Kind {
	case KindText:
		return s.Path
	case KindDir:
		return s.Entry
	}
	return ""
}

type FileInfo struct {
	Path  string
	Mtime int64
	Size  int64
}

// Read resolves path and returns the chat text it holds.
func Read(path string) (Source, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Source{}, "", err
	}

	if info.IsDir() {
		files, err := ListChats(path)
		if err != nil {
			return Source{}, "", err
		}
		if len(files) == 0 {
			return Source{}, "", fmt.Errorf("%s: %w", path, ErrNoChatFile)
		}
		newest := files[0]
		data, err := readLimited(newest.Path)
		if err != nil {
			return Source{}, "", err
		}
		return Source{Path: path, Kind: KindDir, Entry: newest.Path, Mtime: newest.Mtime, Size: newest.Size}, data, nil
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return Source{}, "", fmt.Errorf("detect %s: %w", path, err)
	}
	src := Source{Path: path, Kind: KindText, Mtime: info.ModTime().Unix(), Size: info.Size()}
	if isZip(mt) {
		src.Kind = KindZip
		entry, data, err := readZip(path)
		if err != nil {
			return Source{}, "", err
		}
		src.Entry = entry
		return src, data, nil
	}

	data, err := readLimited(path)
	if err != nil {
		return Source{}, "", err
	}
	return src, data, nil
}

// ListChats walks root for .txt files, newest first.
func ListChats(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	sort.SliceStable(files, func(i, j int) bool { return files[i].Mtime > files[j].Mtime })
	return files, err
}

// isZip also accepts zip-based subtypes (jar, docx, ...) that mimetype may
// report for an export with unusual entries.
func isZip(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

// readZip returns the chat entry of a WhatsApp zip export: "_chat.txt" (iOS)
// or "WhatsApp Chat*.txt" (Android), else the first .txt entry.
func readZip(path string) (string, string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", "", fmt.Errorf("open zip %s: %w", path, err)
	}
	defer zr.Close()

	f := chatEntry(zr.File)
	if f == nil {
		return "", "", fmt.Errorf("%s: %w", path, ErrNoChatFile)
	}
	if f.UncompressedSize64 > uint64(maxExportSize) {
		return "", "", fmt.Errorf("%s!%s: %w", path, f.Name, ErrExportTooLarge)
	}
	rc, err := f.Open()
	if err != nil {
		return "", "", fmt.Errorf("open %s in %s: %w", f.Name, path, err)
	}
	defer rc.Close()
	data, err := readAllLimited(rc, path+"!"+f.Name)
	if err != nil {
		return "", "", err
	}
	return f.Name, data, nil
}

func chatEntry(files []*zip.File) *zip.File {
	var first *zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".txt") {
			continue
		}
		base := filepath.Base(f.Name)
		if base == "_chat.txt" || strings.HasPrefix(base, "WhatsApp Chat") {
			return f
		}
		if first == nil {
			first = f
		}
	}
	return first
}

func readLimited(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return readAllLimited(f, path)
}

// readAllLimited reads r whole, failing rather than truncating past maxExportSize.
func readAllLimited(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxExportSize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(data)) > maxExportSize {
		return "", fmt.Errorf("%s: %w (limit %d bytes)", name, ErrExportTooLarge, maxExportSize)
	}
	return string(data), nil
}
