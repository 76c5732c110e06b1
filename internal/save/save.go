// Package save handles locating a Stardew Valley save on disk and reading
// and writing its bytes. Everything here is plain file plumbing; the save's
// contents are somebody else's problem.
package save

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	ErrNotADirectory  = errors.New("save path is not a directory")
	ErrNoSaveGameInfo = errors.New("directory has no SaveGameInfo file")
	ErrNoSaveFile     = errors.New("directory has no save file named after it")
)

// Locate finds the save file inside a save directory. A real save directory
// contains a SaveGameInfo file plus a file whose name matches the directory
// itself (e.g. Riverwood_123456789/Riverwood_123456789); that second file
// is the save.
func Locate(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotADirectory, abs)
	}

	if fi, err := os.Stat(filepath.Join(abs, "SaveGameInfo")); err != nil || fi.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNoSaveGameInfo, abs)
	}

	path := filepath.Join(abs, filepath.Base(abs))
	if fi, err := os.Stat(path); err != nil || fi.IsDir() {
		return "", fmt.Errorf("%w: expected %s", ErrNoSaveFile, path)
	}
	slog.Debug("located save file", "path", path)
	return path, nil
}

// Read loads the whole save into memory.
func Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Write replaces the save file contents. The bytes go to a temporary file
// in the same directory first and are renamed into place, so an interrupted
// write can never leave a half-written save behind.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	slog.Debug("wrote save file", "path", path, "bytes", len(data))
	return nil
}

// Backup copies the save to a sibling .orig file and returns the backup's
// path. An existing .orig is never overwritten; a uuid suffix keeps every
// earlier backup around.
func Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	target := path + ".orig"
	if _, err := os.Stat(target); err == nil {
		target = fmt.Sprintf("%s.orig.%.8s", path, uuid.NewString())
	}

	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", err
	}
	slog.Debug("backed up save file", "path", target)
	return target, nil
}
