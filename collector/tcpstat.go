package collector

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ftahirops/connstat/model"
	"github.com/ftahirops/connstat/util"
)

// DefaultPath is where the tcpstat kernel module publishes its table.
const DefaultPath = "/proc/net/tcpstat"

// FileSource reads the connection table from a virtual file. Every Read
// consumes the whole file before returning.
type FileSource struct {
	Path string
}

// NewFileSource returns a source reading path, or DefaultPath when empty.
func NewFileSource(path string) *FileSource {
	if path == "" {
		path = DefaultPath
	}
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return s.Path }

func (s *FileSource) Read() (*model.Snapshot, error) {
	lines, err := util.ReadFileLines(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist (is the tcpstat kernel module loaded?)", ErrSourceUnavailable, s.Path)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	snap, err := ParseSnapshot(lines, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return snap, nil
}
