package steering

// Band classifies predator-to-prey distance into the behavior regimes used
// by the hunting goals.
type Band uint8

const (
	// BandContact is point-blank range: switch to the attack action.
	BandContact Band = iota
	// BandChase is the active pursuit regime using interception steering.
	BandChase
	// BandStalk is long range: approach slowly and directly.
	BandStalk
)

func (b Band) String() string {
	switch b {
	case BandContact:
		return "contact"
	case BandChase:
		return "chase"
	case BandStalk:
		return "stalk"
	default:
		return "unknown"
	}
}

// Bands holds the distance cutoffs separating the regimes. These are
// configuration, not law; the defaults match the stock predator tuning.
type Bands struct {
	Contact float64 // below this: contact
	Chase   float64 // below this: chase, above: stalk
}

// DefaultBands returns the stock cutoffs: contact under 2 units, chase
// from 2 to 16, stalk beyond.
func DefaultBands() Bands {
	return Bands{Contact: 2, Chase: 16}
}

// Classify maps a distance to its regime.
func (b Bands) Classify(dist float64) Band {
	switch {
	case dist < b.Contact:
		return BandContact
	case dist < b.Chase:
		return BandChase
	default:
		return BandStalk
	}
}

// StalkSpeedFactor is the speed multiplier applied in the stalk band: close
// distance at half speed to avoid spooking the target.
const StalkSpeedFactor = 0.5
