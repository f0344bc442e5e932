package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore abstrahiert die dauerhafte Ablage von Artikel-Dateien.
// Implementierungen: LocalStore (Standard) und S3Store.
type FileStore interface {
	// MoveToFinal verschiebt eine Datei aus dem temporären Upload-Verzeichnis
	// an ihren endgültigen Ort und gibt den finalen Pfad zurück.
	MoveToFinal(tempDir, filename, destFolder, uniqueID string) (string, error)

	// Remove löscht eine dauerhaft gespeicherte Datei.
	Remove(path string) error

	// RemoveDir löscht ein Verzeichnis samt Inhalt (temporäre Uploads).
	RemoveDir(path string) error
}

// LocalStore speichert Dateien unterhalb eines lokalen Wurzelverzeichnisses.
type LocalStore struct {
	Root string
}

// NewLocalStore erstellt einen LocalStore mit dem gegebenen Wurzelverzeichnis.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

// MoveToFinal verschiebt tempDir/filename nach Root/destFolder/<uniqueID><ext>.
func (s *LocalStore) MoveToFinal(tempDir, filename, destFolder, uniqueID string) (string, error) {
	src := filepath.Join(tempDir, filename)

	destDir := filepath.Join(s.Root, destFolder)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create dest dir: %w", err)
	}

	dest := filepath.Join(destDir, uniqueID+filepath.Ext(filename))
	if err := os.Rename(src, dest); err != nil {
		return "", fmt.Errorf("move %s: %w", filename, err)
	}

	return dest, nil
}

// Remove löscht die Datei am gegebenen Pfad.
func (s *LocalStore) Remove(path string) error {
	return os.Remove(path)
}

// RemoveDir löscht das Verzeichnis samt Inhalt.
func (s *LocalStore) RemoveDir(path string) error {
	return os.RemoveAll(path)
}
