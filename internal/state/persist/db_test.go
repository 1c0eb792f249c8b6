package persist

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/neilhuang007/better-ecology-sub002/internal/needs"
	"github.com/neilhuang007/better-ecology-sub002/internal/pack"
	"github.com/neilhuang007/better-ecology-sub002/internal/state"
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
)

func testStore() (*state.Store, uuid.UUID, uuid.UUID) {
	store := state.NewStore(needs.DefaultThresholds())

	wolfID := uuid.New()
	wolf := store.Ensure(wolfID)
	wolf.Needs.SetHunger(35)
	wolf.Needs.SetThirst(72)
	wolf.PackID = uuid.New()
	wolf.Rank = pack.RankAlpha

	birdID := uuid.New()
	bird := store.Ensure(birdID)
	bird.Needs.SetHunger(90)
	bird.Nest.Establish(vecmath.New(4, 2, -7))
	bird.Nest.AddMaterial()
	bird.Nest.AdvanceProgress(45)

	return store, wolfID, birdID
}

func TestOpenAppliesConnectionPragmas(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "ecology.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.conn.Get(&mode, "PRAGMA journal_mode"); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode: got %q want %q", mode, "wal")
	}

	var timeout int
	if err := db.conn.Get(&timeout, "PRAGMA busy_timeout"); err != nil {
		t.Fatalf("query busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Fatalf("busy_timeout: got %d want 5000", timeout)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecology.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	store, wolfID, birdID := testStore()
	if err := db.Save(store); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Simulate a reload into a fresh store.
	loaded := state.NewStore(needs.DefaultThresholds())
	if err := db.Load(loaded); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 agents, got %d", loaded.Len())
	}

	wolf := loaded.Get(wolfID)
	if wolf == nil {
		t.Fatalf("wolf not restored")
	}
	if wolf.Needs.Hunger() != 35 || wolf.Needs.Thirst() != 72 {
		t.Fatalf("wolf needs wrong: %f/%f", wolf.Needs.Hunger(), wolf.Needs.Thirst())
	}
	if wolf.Rank != pack.RankAlpha || !wolf.InPack() {
		t.Fatalf("wolf pack state wrong: %+v", wolf)
	}

	bird := loaded.Get(birdID)
	if bird == nil {
		t.Fatalf("bird not restored")
	}
	if !bird.Nest.Active || bird.Nest.Materials != 1 || bird.Nest.Progress != 45 {
		t.Fatalf("bird nest wrong: %+v", bird.Nest)
	}
	if bird.Nest.Location != vecmath.New(4, 2, -7) {
		t.Fatalf("nest location wrong: %+v", bird.Nest.Location)
	}
}

func TestSaveReplacesExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecology.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	store, wolfID, _ := testStore()
	if err := db.Save(store); err != nil {
		t.Fatalf("save: %v", err)
	}
	store.Get(wolfID).Needs.SetHunger(5)
	if err := db.Save(store); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded := state.NewStore(needs.DefaultThresholds())
	if err := db.Load(loaded); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := loaded.Get(wolfID).Needs.Hunger(); got != 5 {
		t.Fatalf("expected updated hunger 5, got %f", got)
	}
}

func TestDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecology.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	store, wolfID, _ := testStore()
	if err := db.Save(store); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.Delete(wolfID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	loaded := state.NewStore(needs.DefaultThresholds())
	if err := db.Load(loaded); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Get(wolfID) != nil {
		t.Fatalf("deleted agent still present")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	store, wolfID, _ := testStore()

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, store, 1234); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	restored := state.NewStore(needs.DefaultThresholds())
	tick, err := ReadSnapshot(&buf, restored)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if tick != 1234 {
		t.Fatalf("tick: got %d", tick)
	}
	if restored.Len() != 2 {
		t.Fatalf("agents: got %d", restored.Len())
	}
	if got := restored.Get(wolfID).Needs.Hunger(); got != 35 {
		t.Fatalf("hunger: got %f", got)
	}
}
