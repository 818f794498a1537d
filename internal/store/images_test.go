package store

import (
	"context"
	"testing"

	"github.com/erazemk/omara/internal/db"
)

func TestImageRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := PutImage(ctx, database, "abc", []byte("fake image data"), "image/jpeg"); err != nil {
		t.Fatalf("PutImage: %v", err)
	}

	data, mime, err := GetImage(ctx, database, "abc")
	if err != nil {
		t.Fatalf("GetImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}
}

func TestPutImageIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	PutImage(ctx, database, "abc", []byte("first"), "image/jpeg")
	if err := PutImage(ctx, database, "abc", []byte("second"), "image/jpeg"); err != nil {
		t.Fatalf("second PutImage: %v", err)
	}

	data, _, _ := GetImage(ctx, database, "abc")
	if string(data) != "first" {
		t.Errorf("expected first copy kept, got %q", string(data))
	}
}

func TestGetMissingImage(t *testing.T) {
	database := db.NewTestDB(t)

	data, mime, err := GetImage(context.Background(), database, "missing")
	if err != nil {
		t.Fatalf("GetImage: %v", err)
	}
	if data != nil || mime != "" {
		t.Errorf("expected nothing, got %d bytes %q", len(data), mime)
	}
}
