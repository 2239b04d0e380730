package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store writes generated media under fixed directories. Files are
// overwritten when an identifier is reused.
type Store struct {
	imagesDir string
	audioDir  string
}

func NewStore(imagesDir, audioDir string) *Store {
	return &Store{imagesDir: imagesDir, audioDir: audioDir}
}

// Identifier names the media of the index-th article of a topic. Anything
// that could act as a path separator is replaced so the name stays inside
// the output directory.
func Identifier(topic string, index int) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '_' || r == '-':
			return r
		}
		return '-'
	}, topic)
	return safe + "_" + strconv.Itoa(index)
}

// SaveImage stores data as <images-dir>/<id>.png, re-encoding to PNG when
// the generator answered with another format.
func (s *Store) SaveImage(id string, data []byte) (string, error) {
	data, err := ensurePNG(data)
	if err != nil {
		return "", fmt.Errorf("image %s: %w", id, err)
	}
	return write(s.imagesDir, id+".png", data)
}

func (s *Store) SaveAudio(id string, data []byte) (string, error) {
	return write(s.audioDir, id+".wav", data)
}

func write(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func ensurePNG(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, pngSignature) {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
