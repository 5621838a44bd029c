package results

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryStoreSaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := &Recording{
		Filename:   "audio_20250318_161126.wav",
		RecordedAt: time.Date(2025, 3, 18, 16, 11, 26, 0, time.UTC),
		Emotions: []EmotionScore{
			{Name: "Joy", Score: 0.75},
		},
	}

	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Fatal("Save() did not assign an ID")
	}

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Filename != rec.Filename {
		t.Errorf("Filename = %q, want %q", got.Filename, rec.Filename)
	}
	if len(got.Emotions) != 1 || got.Emotions[0].Name != "Joy" {
		t.Errorf("Emotions = %+v, want Joy", got.Emotions)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	base := time.Date(2025, 3, 18, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := &Recording{
			Filename:   "clip",
			RecordedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.Save(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List() returned %d recordings, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].RecordedAt.After(got[i-1].RecordedAt) {
			t.Errorf("List() not newest first: %v before %v", got[i-1].RecordedAt, got[i].RecordedAt)
		}
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d recordings, want 2", len(limited))
	}
}

func TestMemoryStoreCount(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Save(ctx, &Recording{Filename: "a", RecordedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestMemoryStoreCopiesOnSave(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := &Recording{
		Filename:   "clip",
		RecordedAt: time.Now(),
		Emotions:   []EmotionScore{{Name: "Joy", Score: 0.5}},
	}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's slice must not reach the stored copy.
	rec.Emotions[0].Name = "Changed"

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Emotions[0].Name != "Joy" {
		t.Errorf("stored emotion = %q, want %q", got.Emotions[0].Name, "Joy")
	}
}
