// Package imageio decodes scan entries into a closed still/animated source
// variant, independent of any rendering toolkit.
package imageio

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"iv/internal/scan"
)

// Kind tags a decoded source.
type Kind int

const (
	Still Kind = iota
	Animated
)

// Source is a decoded image: a single frame for stills, the full frame
// sequence with per-frame delays for animations.
type Source struct {
	Kind   Kind
	Frames []image.Image
	Delays []time.Duration // one per frame, Animated only
	Width  int
	Height int
}

// First returns the frame to show when no animation is running.
func (s *Source) First() image.Image {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[0]
}

// Load decodes the entry into a Source. GIF files with more than one frame
// decode to an Animated source with composited full frames; everything else
// is a Still.
func Load(e scan.Entry) (*Source, error) {
	data, err := readEntry(e)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(entryName(e)), ".gif") {
		return decodeGIF(data, entryName(e))
	}
	return decodeStill(data, entryName(e))
}

func entryName(e scan.Entry) string {
	if e.IsArchiveEntry() {
		return e.EntryPath
	}
	return e.Path
}

func decodeStill(data []byte, name string) (*Source, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", name, err)
	}
	b := img.Bounds()
	return &Source{
		Kind:   Still,
		Frames: []image.Image{img},
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

func decodeGIF(data []byte, name string) (*Source, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", name, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("decoding %s: no frames", name)
	}
	if len(g.Image) == 1 {
		b := g.Image[0].Bounds()
		return &Source{
			Kind:   Still,
			Frames: []image.Image{g.Image[0]},
			Width:  b.Dx(),
			Height: b.Dy(),
		}, nil
	}

	// GIF frames can be partial updates; composite each one over the
	// previous canvas so every stored frame is complete.
	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Dx(), b.Dy()
	}

	frames := make([]image.Image, 0, len(g.Image))
	delays := make([]time.Duration, 0, len(g.Image))
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, frame := range g.Image {
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		snapshot := image.NewRGBA(canvas.Bounds())
		copy(snapshot.Pix, canvas.Pix)
		frames = append(frames, snapshot)

		// GIF delays are hundredths of a second; treat the pathological
		// zero delay as the conventional 100ms.
		d := time.Duration(g.Delay[i]) * 10 * time.Millisecond
		if d <= 0 {
			d = 100 * time.Millisecond
		}
		delays = append(delays, d)
	}

	return &Source{
		Kind:   Animated,
		Frames: frames,
		Delays: delays,
		Width:  w,
		Height: h,
	}, nil
}

// readEntry returns the raw bytes of a plain file or archive member.
func readEntry(e scan.Entry) ([]byte, error) {
	if !e.IsArchiveEntry() {
		return os.ReadFile(e.Path)
	}
	switch strings.ToLower(filepath.Ext(e.ArchivePath)) {
	case ".zip":
		return readZipEntry(e.ArchivePath, e.EntryPath)
	case ".rar":
		return readRarEntry(e.ArchivePath, e.EntryPath)
	case ".7z":
		return read7zEntry(e.ArchivePath, e.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", e.ArchivePath)
	}
}

func readZipEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readRarEntry(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func read7zEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}
