package vision

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
)

// Camera opens a live frame stream.
type Camera interface {
	Acquire(ctx context.Context) (Stream, error)
}

// Stream yields frames until released. Release must be safe to call twice.
type Stream interface {
	Frame(ctx context.Context) (model.Frame, error)
	Release() error
}

// FileCamera reads frames from an image file or, when Path is a
// directory, from the most recently modified image inside it.
type FileCamera struct {
	Path string
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// Acquire checks that Path is readable and returns a stream over it.
func (c FileCamera) Acquire(_ context.Context) (Stream, error) {
	path := strings.TrimSpace(c.Path)
	if path == "" {
		return nil, fmt.Errorf("%w: no frame source configured", ErrPermissionDenied)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		return nil, fmt.Errorf("failed to open frame source: %w", err)
	}
	if info.IsDir() {
		if _, err := os.ReadDir(path); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
	}
	return &fileStream{path: path, dir: info.IsDir()}, nil
}

type fileStream struct {
	path string
	dir  bool

	mu       sync.Mutex
	released bool
}

func (s *fileStream) Frame(ctx context.Context) (model.Frame, error) {
	if err := ctx.Err(); err != nil {
		return model.Frame{}, err
	}
	s.mu.Lock()
	released := s.released
	s.mu.Unlock()
	if released {
		return model.Frame{}, ErrStreamReleased
	}

	path := s.path
	if s.dir {
		latest, err := latestImage(s.path)
		if err != nil {
			return model.Frame{}, err
		}
		path = latest
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Frame{}, fmt.Errorf("failed to read frame: %w", err)
	}
	if len(data) == 0 {
		return model.Frame{}, ErrNoFrame
	}
	return model.Frame{
		Data:       data,
		MIMEType:   mimeTypeFor(path, data),
		CapturedAt: time.Now(),
	}, nil
}

func (s *fileStream) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = true
	return nil
}

func latestImage(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list frames: %w", err)
	}
	var (
		best    string
		bestMod time.Time
	)
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if best == "" || info.ModTime().After(bestMod) {
			best = filepath.Join(dir, e.Name())
			bestMod = info.ModTime()
		}
	}
	if best == "" {
		return "", ErrNoFrame
	}
	return best, nil
}

func mimeTypeFor(path string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
