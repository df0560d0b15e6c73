package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbnailQuality = 85

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// Store writes item images and their thumbnails under a media directory:
// items/{itemID}{ext} for originals, thumbnails/{itemID}_thumb.jpg for the
// square previews.
type Store struct {
	dir           string
	thumbnailSize int
}

func NewStore(dir string, thumbnailSize int) (*Store, error) {
	for _, sub := range []string{"items", "thumbnails"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create media dir %s: %w", sub, err)
		}
	}
	return &Store{dir: dir, thumbnailSize: thumbnailSize}, nil
}

// AllowedExtension reports whether a filename carries a supported image
// extension.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// DecodeDataURL splits a base64 data URL ("data:image/png;base64,...")
// into raw bytes and an extension. Bare base64 is accepted and treated as
// JPEG.
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	payload := dataURL
	ext := ".jpg"

	if strings.HasPrefix(dataURL, "data:") {
		head, rest, ok := strings.Cut(dataURL, ",")
		if !ok {
			return nil, "", fmt.Errorf("malformed data URL")
		}
		payload = rest
		switch {
		case strings.Contains(head, "image/png"):
			ext = ".png"
		case strings.Contains(head, "image/webp"):
			ext = ".webp"
		case strings.Contains(head, "image/jpeg"), strings.Contains(head, "image/jpg"):
			ext = ".jpg"
		default:
			return nil, "", fmt.Errorf("unsupported image type in data URL")
		}
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode image base64: %w", err)
	}
	return raw, ext, nil
}

// SaveItemImage writes the original and generates the thumbnail, returning
// both paths relative to the media directory.
func (s *Store) SaveItemImage(itemID uuid.UUID, raw []byte, ext string) (imagePath, thumbPath string, err error) {
	ext = strings.ToLower(ext)
	if !allowedExtensions[ext] {
		return "", "", fmt.Errorf("unsupported image extension %q", ext)
	}

	imagePath = filepath.Join("items", itemID.String()+ext)
	if err := os.WriteFile(filepath.Join(s.dir, imagePath), raw, 0o644); err != nil {
		return "", "", fmt.Errorf("write item image: %w", err)
	}

	thumbPath, err = s.generateThumbnail(itemID, imagePath)
	if err != nil {
		return "", "", err
	}
	return imagePath, thumbPath, nil
}

// generateThumbnail fits the original inside a square box and saves it as
// JPEG. Fit preserves aspect ratio rather than cropping.
func (s *Store) generateThumbnail(itemID uuid.UUID, imagePath string) (string, error) {
	src, err := imaging.Open(filepath.Join(s.dir, imagePath))
	if err != nil {
		return "", fmt.Errorf("open image for thumbnail: %w", err)
	}

	thumb := imaging.Fit(src, s.thumbnailSize, s.thumbnailSize, imaging.Lanczos)
	thumbPath := filepath.Join("thumbnails", itemID.String()+"_thumb.jpg")

	err = imaging.Save(thumb, filepath.Join(s.dir, thumbPath), imaging.JPEGQuality(thumbnailQuality))
	if err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}
	return thumbPath, nil
}

// Remove deletes an item's stored files. Missing files are not an error:
// removal runs on soft delete and may repeat.
func (s *Store) Remove(imagePath, thumbPath string) error {
	for _, p := range []string{imagePath, thumbPath} {
		if p == "" {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, p)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove media file %s: %w", p, err)
		}
	}
	return nil
}

// AbsolutePath resolves a stored relative path against the media root.
func (s *Store) AbsolutePath(rel string) string {
	return filepath.Join(s.dir, rel)
}

// Dir returns the media root, for mounting the static file server.
func (s *Store) Dir() string {
	return s.dir
}
