// Package bulkimport extracts clothing photos from a zip archive.
package bulkimport

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/erazemk/omara/internal/model"
)

// MaxEntrySize caps a single extracted image.
const MaxEntrySize = 20 << 20

// Unprocessed is an image found in an archive, not yet turned into an item.
type Unprocessed struct {
	OriginalName string `json:"originalName"`
	Data         []byte `json:"-"`
	MIME         string `json:"mime"`
}

var extensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// Read returns every image entry of the zip archive in r. Entries are picked
// by file extension. An archive without images yields model.ErrNoImages.
func Read(r io.ReaderAt, size int64) ([]Unprocessed, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	var out []Unprocessed
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		mime, ok := extensions[strings.ToLower(path.Ext(f.Name))]
		if !ok {
			continue
		}
		if f.UncompressedSize64 > MaxEntrySize {
			return nil, fmt.Errorf("entry %s exceeds %d bytes", f.Name, MaxEntrySize)
		}

		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		out = append(out, Unprocessed{OriginalName: f.Name, Data: data, MIME: mime})
	}

	if len(out) == 0 {
		return nil, model.ErrNoImages
	}
	return out, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading entry %s: %w", f.Name, err)
	}
	if len(data) > MaxEntrySize {
		return nil, fmt.Errorf("entry %s exceeds %d bytes", f.Name, MaxEntrySize)
	}
	return data, nil
}

// DisplayName turns an archive entry name into a default item name.
func DisplayName(originalName string) string {
	base := path.Base(originalName)
	name := strings.TrimSuffix(base, path.Ext(base))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.TrimSpace(name)
}
