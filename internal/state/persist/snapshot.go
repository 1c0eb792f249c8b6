package persist

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/neilhuang007/better-ecology-sub002/internal/state"
)

// snapshotV1 is the export format for offline inspection and replay seeds.
type snapshotV1 struct {
	Version int        `json:"version"`
	Tick    uint64     `json:"tick"`
	Agents  []agentRow `json:"agents"`
}

// WriteSnapshot streams a zstd-compressed JSON snapshot of the store.
func WriteSnapshot(w io.Writer, store *state.Store, tick uint64) error {
	snap := snapshotV1{Version: 1, Tick: tick}
	var snapErr error
	store.ForEach(func(a *state.AgentState) {
		if snapErr != nil {
			return
		}
		row, err := rowFor(a)
		if err != nil {
			snapErr = err
			return
		}
		snap.Agents = append(snap.Agents, row)
	})
	if snapErr != nil {
		return snapErr
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(snap); err != nil {
		enc.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

// ReadSnapshot restores a snapshot written by WriteSnapshot and returns the
// tick it was taken at.
func ReadSnapshot(r io.Reader, store *state.Store) (uint64, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	var snap snapshotV1
	if err := json.NewDecoder(dec).Decode(&snap); err != nil {
		return 0, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != 1 {
		return 0, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	for _, row := range snap.Agents {
		if err := row.restore(store); err != nil {
			return 0, err
		}
	}
	return snap.Tick, nil
}
