package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrInvalidPath is returned by FromFS for paths which can't be expressed in terms of fs.FS.
var ErrInvalidPath = errors.New("filesystem: invalid path")

// Info is a subset of file metadata the server is interested in.
type Info struct {
	IsDir   bool
	IsFile  bool
	Size    int64
	ModTime time.Time
}

// Filesystem is the only way the server touches files. Stat errors and Open errors are
// reported separately, as they result in different outcomes.
type Filesystem interface {
	Stat(path string) (Info, error)
	Open(path string) (io.ReadCloser, error)
}

func infoOf(stat fs.FileInfo) Info {
	return Info{
		IsDir:   stat.IsDir(),
		IsFile:  stat.Mode().IsRegular(),
		Size:    stat.Size(),
		ModTime: stat.ModTime(),
	}
}

type local struct{}

// Local returns the Filesystem backed by the OS.
func Local() Filesystem {
	return local{}
}

func (local) Stat(path string) (Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}

	return infoOf(stat), nil
}

// Open returns *os.File, so copying it into a TCP connection may use sendfile(2).
func (local) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

type wrapped struct {
	fsys fs.FS
}

// FromFS adapts fs.FS. Paths are converted into the slash-separated form without the
// leading separator, so the root folder must be either empty or ".".
func FromFS(fsys fs.FS) Filesystem {
	return wrapped{fsys: fsys}
}

func (w wrapped) Stat(path string) (Info, error) {
	name, err := toFSName(path)
	if err != nil {
		return Info{}, err
	}

	stat, err := fs.Stat(w.fsys, name)
	if err != nil {
		return Info{}, err
	}

	return infoOf(stat), nil
}

func (w wrapped) Open(path string) (io.ReadCloser, error) {
	name, err := toFSName(path)
	if err != nil {
		return nil, err
	}

	return w.fsys.Open(name)
}

func toFSName(path string) (string, error) {
	name := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/")
	if len(name) == 0 {
		name = "."
	}

	if !fs.ValidPath(name) {
		return "", ErrInvalidPath
	}

	return name, nil
}
