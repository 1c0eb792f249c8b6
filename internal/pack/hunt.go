package pack

// HuntPhase tracks the coordinated hunt's lifecycle.
type HuntPhase uint8

const (
	HuntPositioning HuntPhase = iota
	HuntConverging
	HuntAborted
)

// HuntConfig tunes the coordinator.
type HuntConfig struct {
	// PositionedQuorum flankers on station flips the hunt to convergence.
	PositionedQuorum int
	// TimeoutTicks aborts a hunt whose positioning never completes. This
	// timeout is independent of any individual goal's give-up budget.
	TimeoutTicks uint64
}

// DefaultHuntConfig returns the stock coordination tuning.
func DefaultHuntConfig() HuntConfig {
	return HuntConfig{PositionedQuorum: 2, TimeoutTicks: 600}
}

// Hunt coordinates one pack's converge-and-attack. It is shared state in
// the same sense as Record: looked up, read-modified-written inside a
// single tick, never concurrently.
type Hunt struct {
	cfg        HuntConfig
	record     *Record
	startTick  uint64
	phase      HuntPhase
	positioned map[string]bool
}

// NewHunt starts coordinating the record's marked target.
func NewHunt(record *Record, startTick uint64, cfg HuntConfig) *Hunt {
	if cfg.PositionedQuorum <= 0 {
		cfg.PositionedQuorum = DefaultHuntConfig().PositionedQuorum
	}
	if cfg.TimeoutTicks == 0 {
		cfg.TimeoutTicks = DefaultHuntConfig().TimeoutTicks
	}
	return &Hunt{
		cfg:        cfg,
		record:     record,
		startTick:  startTick,
		positioned: make(map[string]bool),
	}
}

// Record returns the pack record the hunt is bound to.
func (h *Hunt) Record() *Record { return h.record }

// Phase returns the current coordinator phase.
func (h *Hunt) Phase() HuntPhase { return h.phase }

// ReportPosition is called by each flanker every tick with whether it is
// standing on its assigned flank station.
func (h *Hunt) ReportPosition(agentID string, inRange bool) {
	if h.phase != HuntPositioning {
		return
	}
	if inRange {
		h.positioned[agentID] = true
	} else {
		delete(h.positioned, agentID)
	}
	if len(h.positioned) >= h.cfg.PositionedQuorum {
		h.phase = HuntConverging
	}
}

// PositionedCount reports how many flankers are currently in range.
func (h *Hunt) PositionedCount() int { return len(h.positioned) }

// Converging reports whether the quorum was reached and all positioned
// members should close in and attack.
func (h *Hunt) Converging() bool { return h.phase == HuntConverging }

// Advance checks the global timeout. Once expired the hunt aborts and the
// record's mark is cleared; individual goals observe the lost mark through
// their ordinary continue checks.
func (h *Hunt) Advance(tick uint64) {
	if h.phase == HuntAborted {
		return
	}
	if h.phase == HuntPositioning && tick >= h.startTick+h.cfg.TimeoutTicks {
		h.phase = HuntAborted
		if h.record != nil {
			h.record.ClearTarget()
		}
	}
}

// Aborted reports whether the coordinator gave up.
func (h *Hunt) Aborted() bool { return h.phase == HuntAborted }
