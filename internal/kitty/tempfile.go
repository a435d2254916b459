package kitty

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultTempPrefix names files handed to the terminal with t=t. Kitty
// removes files whose path contains "tty-graphics-protocol" once read.
const DefaultTempPrefix = "tty-graphics-protocol-kittypreview-"

const tempSuffix = ".rgb"

// TempFile receives raw pixel bytes and outlives the process that wrote it.
type TempFile interface {
	io.Writer
	Flush() error
	Close() error
	// Path returns the absolute path of the file.
	Path() (string, error)
}

// TempFiles creates uniquely named temporary files.
type TempFiles interface {
	Create() (TempFile, error)
}

// DirTempFiles creates files in Dir (os.TempDir when empty) named
// <Prefix><uuid>.rgb. Files are kept on disk after Close.
type DirTempFiles struct {
	Dir    string
	Prefix string
}

func (d DirTempFiles) dir() string {
	if d.Dir == "" {
		return os.TempDir()
	}
	return d.Dir
}

func (d DirTempFiles) prefix() string {
	if d.Prefix == "" {
		return DefaultTempPrefix
	}
	return d.Prefix
}

func (d DirTempFiles) Create() (TempFile, error) {
	name := filepath.Join(d.dir(), d.prefix()+uuid.NewString()+tempSuffix)
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &diskTempFile{f: f, w: bufio.NewWriter(f)}, nil
}

type diskTempFile struct {
	f *os.File
	w *bufio.Writer
}

func (t *diskTempFile) Write(p []byte) (int, error) { return t.w.Write(p) }

func (t *diskTempFile) Flush() error { return t.w.Flush() }

func (t *diskTempFile) Close() error { return t.f.Close() }

func (t *diskTempFile) Path() (string, error) {
	return filepath.Abs(t.f.Name())
}
