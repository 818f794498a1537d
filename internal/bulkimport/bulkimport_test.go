package bulkimport

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/omara/internal/model"
)

func buildZip(t *testing.T, files map[string]string, dirs ...string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, d := range dirs {
		_, err := zw.Create(d + "/")
		require.NoError(t, err)
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return bytes.NewReader(buf.Bytes())
}

func TestReadPicksImagesByExtension(t *testing.T) {
	r := buildZip(t, map[string]string{
		"shirts/blue_shirt.JPG":     "jpg",
		"jeans.png":                 "png",
		"scarf.gif":                 "gif",
		"boots.jpeg":                "jpeg",
		"notes.txt":                 "text",
		"__MACOSX/shirts/._a.jpg":   "junk",
	}, "shirts")

	got, err := Read(r, r.Size())
	require.NoError(t, err)
	require.Len(t, got, 4)

	byName := map[string]Unprocessed{}
	for _, u := range got {
		byName[u.OriginalName] = u
	}
	assert.Equal(t, "image/jpeg", byName["shirts/blue_shirt.JPG"].MIME)
	assert.Equal(t, "image/png", byName["jeans.png"].MIME)
	assert.Equal(t, "image/gif", byName["scarf.gif"].MIME)
	assert.Equal(t, []byte("jpeg"), byName["boots.jpeg"].Data)
}

func TestReadNoImages(t *testing.T) {
	r := buildZip(t, map[string]string{"readme.md": "hi"})
	_, err := Read(r, r.Size())
	assert.ErrorIs(t, err, model.ErrNoImages)
}

func TestReadCorruptArchive(t *testing.T) {
	r := bytes.NewReader([]byte("definitely not a zip"))
	_, err := Read(r, r.Size())
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNoImages)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "blue shirt", DisplayName("shirts/blue_shirt.JPG"))
	assert.Equal(t, "rain coat", DisplayName("rain-coat.png"))
}
