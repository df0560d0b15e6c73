package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestAllowedExtension(t *testing.T) {
	for name, want := range map[string]bool{
		"photo.jpg": true, "photo.JPEG": true, "photo.png": true,
		"photo.webp": true, "photo.gif": false, "photo": false,
	} {
		if got := AllowedExtension(name); got != want {
			t.Errorf("AllowedExtension(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestDecodeDataURL(t *testing.T) {
	raw := []byte("image-bytes")
	encoded := base64.StdEncoding.EncodeToString(raw)

	got, ext, err := DecodeDataURL("data:image/png;base64," + encoded)
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Errorf("decoded bytes mismatch")
	}
	if ext != ".png" {
		t.Errorf("ext = %q, want .png", ext)
	}

	// Bare base64 defaults to JPEG.
	_, ext, err = DecodeDataURL(encoded)
	if err != nil {
		t.Fatalf("bare base64: %v", err)
	}
	if ext != ".jpg" {
		t.Errorf("bare ext = %q, want .jpg", ext)
	}

	if _, _, err := DecodeDataURL("data:image/tiff;base64," + encoded); err == nil {
		t.Error("expected error for unsupported image type")
	}
}

func TestSaveItemImageGeneratesThumbnail(t *testing.T) {
	store, err := NewStore(t.TempDir(), 300)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	itemID := uuid.New()
	imagePath, thumbPath, err := store.SaveItemImage(itemID, testJPEG(t, 800, 600), ".jpg")
	if err != nil {
		t.Fatalf("SaveItemImage: %v", err)
	}

	if !strings.HasSuffix(thumbPath, itemID.String()+"_thumb.jpg") {
		t.Errorf("thumbPath = %q, want *_thumb.jpg suffix", thumbPath)
	}

	thumb, err := imaging.Open(store.AbsolutePath(thumbPath))
	if err != nil {
		t.Fatalf("open thumbnail: %v", err)
	}
	bounds := thumb.Bounds()
	if bounds.Dx() > 300 || bounds.Dy() > 300 {
		t.Errorf("thumbnail %dx%d exceeds 300x300", bounds.Dx(), bounds.Dy())
	}
	// Fit keeps aspect ratio: 800x600 lands on 300x225.
	if bounds.Dx() != 300 || bounds.Dy() != 225 {
		t.Errorf("thumbnail %dx%d, want 300x225", bounds.Dx(), bounds.Dy())
	}

	if _, err := os.Stat(store.AbsolutePath(imagePath)); err != nil {
		t.Errorf("original missing: %v", err)
	}
}

func TestSaveItemImageRejectsUnknownExtension(t *testing.T) {
	store, err := NewStore(t.TempDir(), 300)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, _, err := store.SaveItemImage(uuid.New(), []byte("x"), ".exe"); err == nil {
		t.Fatal("expected error for disallowed extension")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store, err := NewStore(t.TempDir(), 300)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	itemID := uuid.New()
	imagePath, thumbPath, err := store.SaveItemImage(itemID, testJPEG(t, 100, 100), ".jpg")
	if err != nil {
		t.Fatalf("SaveItemImage: %v", err)
	}

	if err := store.Remove(imagePath, thumbPath); err != nil {
		t.Fatalf("first Remove: %v", err)
	}
	if err := store.Remove(imagePath, thumbPath); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), imagePath)); !os.IsNotExist(err) {
		t.Errorf("original still present after Remove")
	}
}
