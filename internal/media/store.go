package media

import (
	"context"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/wichananm65/disma-site/internal/metrics"
)

// ErrUploadFailed is the only error surfaced to callers when an image cannot
// be ingested; the cause is logged.
var ErrUploadFailed = errors.New("upload failed")

const (
	DefaultURLPrefix = "/bucket/"
	DefaultMaxSide   = 1200
	DefaultQuality   = 85
)

// Config describes where processed images go and how they are encoded.
type Config struct {
	Dir       string
	URLPrefix string
	MaxWidth  int
	MaxHeight int
	Quality   float32
}

// Store re-encodes uploaded images to WebP inside the public asset directory.
type Store struct {
	cfg Config
	log *zap.Logger
}

func NewStore(cfg Config, log *zap.Logger) *Store {
	if cfg.URLPrefix == "" {
		cfg.URLPrefix = DefaultURLPrefix
	}
	if !strings.HasSuffix(cfg.URLPrefix, "/") {
		cfg.URLPrefix += "/"
	}
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = DefaultMaxSide
	}
	if cfg.MaxHeight <= 0 {
		cfg.MaxHeight = DefaultMaxSide
	}
	if cfg.Quality <= 0 {
		cfg.Quality = DefaultQuality
	}
	return &Store{cfg: cfg, log: log}
}

// Save ingests a multipart upload and returns its public URL.
func (s *Store) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		s.log.Error("error opening upload", zap.String("filename", fh.Filename), zap.Error(err))
		metrics.RecordUpload(err)
		return "", ErrUploadFailed
	}
	defer f.Close()
	return s.SaveReader(ctx, f)
}

// SaveReader decodes any registered image format from r, fits it inside the
// configured bounds without enlarging and writes <uuid>.webp.
func (s *Store) SaveReader(ctx context.Context, r io.Reader) (string, error) {
	url, err := s.save(ctx, r)
	metrics.RecordUpload(err)
	if err != nil {
		s.log.Error("error uploading image", zap.Error(err))
		return "", ErrUploadFailed
	}
	return url, nil
}

func (s *Store) save(ctx context.Context, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create asset dir")
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", errors.Wrap(err, "decode image")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Fit returns a copy when the image already fits, so small images are never enlarged.
	img = imaging.Fit(img, s.cfg.MaxWidth, s.cfg.MaxHeight, imaging.Lanczos)

	filename := uuid.NewString() + ".webp"
	path := filepath.Join(s.cfg.Dir, filename)
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "create image file")
	}
	if err := webp.Encode(out, img, &webp.Options{Quality: s.cfg.Quality}); err != nil {
		out.Close()
		os.Remove(path)
		return "", errors.Wrap(err, "encode webp")
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", errors.Wrap(err, "close image file")
	}
	return s.cfg.URLPrefix + filename, nil
}

// Delete removes the file behind a URL previously returned by Save. URLs
// outside the asset prefix are ignored, a missing file counts as deleted and
// any other failure is only logged.
func (s *Store) Delete(ctx context.Context, url string) {
	path, ok := s.pathFor(url)
	if !ok {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Error("error deleting image", zap.String("url", url), zap.Error(err))
	}
}

// Owns reports whether url points into the managed asset directory.
func (s *Store) Owns(url string) bool {
	_, ok := s.pathFor(url)
	return ok
}

func (s *Store) pathFor(url string) (string, bool) {
	if !strings.HasPrefix(url, s.cfg.URLPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, s.cfg.URLPrefix)
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", false
	}
	return filepath.Join(s.cfg.Dir, name), true
}
