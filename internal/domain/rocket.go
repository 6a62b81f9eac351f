package domain

import "time"

// Zone identifies one of the five fixed rocket assembly slots.
type Zone string

const (
	ZoneNose    Zone = "nose"
	ZonePayload Zone = "payload"
	ZoneFuel    Zone = "fuel"
	ZoneEngine  Zone = "engine"
	ZoneFins    Zone = "fins"
)

// Zones lists the assembly slots in top-to-bottom rocket order.
func Zones() []Zone {
	return []Zone{ZoneNose, ZonePayload, ZoneFuel, ZoneEngine, ZoneFins}
}

// RocketPart is a draggable component with exactly one correct zone.
type RocketPart struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Zone Zone   `json:"zone"`
}

var rocketParts = map[string]RocketPart{
	"nose-cone": {ID: "nose-cone", Name: "Nose Cone", Zone: ZoneNose},
	"payload":   {ID: "payload", Name: "Payload Bay", Zone: ZonePayload},
	"fuel-tank": {ID: "fuel-tank", Name: "Fuel Tank", Zone: ZoneFuel},
	"engine":    {ID: "engine", Name: "Engine", Zone: ZoneEngine},
	"fins":      {ID: "fins", Name: "Fins", Zone: ZoneFins},
}

// PartByID looks up a part in the fixed five-part catalog.
func PartByID(partID string) (RocketPart, error) {
	part, ok := rocketParts[partID]
	if !ok {
		return RocketPart{}, ErrUnknownPart
	}
	return part, nil
}

// RocketParts maps each zone to whether its part has been placed.
type RocketParts struct {
	Nose    bool `json:"nose"`
	Payload bool `json:"payload"`
	Fuel    bool `json:"fuel"`
	Engine  bool `json:"engine"`
	Fins    bool `json:"fins"`
}

// Placed reports whether the given zone is filled.
func (p RocketParts) Placed(zone Zone) bool {
	switch zone {
	case ZoneNose:
		return p.Nose
	case ZonePayload:
		return p.Payload
	case ZoneFuel:
		return p.Fuel
	case ZoneEngine:
		return p.Engine
	case ZoneFins:
		return p.Fins
	}
	return false
}

// WithPlaced returns a copy with the given zone filled.
func (p RocketParts) WithPlaced(zone Zone) RocketParts {
	switch zone {
	case ZoneNose:
		p.Nose = true
	case ZonePayload:
		p.Payload = true
	case ZoneFuel:
		p.Fuel = true
	case ZoneEngine:
		p.Engine = true
	case ZoneFins:
		p.Fins = true
	}
	return p
}

// Complete reports whether all five zones are filled.
func (p RocketParts) Complete() bool {
	return p.Nose && p.Payload && p.Fuel && p.Engine && p.Fins
}

// Missing lists the unfilled zones in rocket order.
func (p RocketParts) Missing() []Zone {
	var missing []Zone
	for _, zone := range Zones() {
		if !p.Placed(zone) {
			missing = append(missing, zone)
		}
	}
	return missing
}

// Stability scores the placement additively: nose 20, fins 40, engine 20,
// plus 20 when fuel and payload are both present. Sums to 100 when complete.
func (p RocketParts) Stability() int {
	score := 0
	if p.Nose {
		score += 20
	}
	if p.Fins {
		score += 40
	}
	if p.Engine {
		score += 20
	}
	if p.Fuel && p.Payload {
		score += 20
	}
	return score
}

// Efficiency scores the placement additively: engine 30, fuel 30, nose 20,
// payload 10, fins 10. Sums to 100 when complete.
func (p RocketParts) Efficiency() int {
	score := 0
	if p.Engine {
		score += 30
	}
	if p.Fuel {
		score += 30
	}
	if p.Nose {
		score += 20
	}
	if p.Payload {
		score += 10
	}
	if p.Fins {
		score += 10
	}
	return score
}

// AssemblyState is a snapshot of a live builder session. Stability and
// efficiency are always derived from Parts, never stored.
type AssemblyState struct {
	Name       string      `json:"name"`
	Parts      RocketParts `json:"parts"`
	Stability  int         `json:"stability"`
	Efficiency int         `json:"efficiency"`
	Complete   bool        `json:"complete"`
}

// LaunchTier classifies a launch attempt.
type LaunchTier string

const (
	PerfectLaunch  LaunchTier = "perfect_launch"
	GoodLaunch     LaunchTier = "good_launch"
	PartialSuccess LaunchTier = "partial_success"
	LaunchFailed   LaunchTier = "launch_failed"
)

// LaunchOutcome is the classification of a completed launch attempt.
// Every tier awards XP; failure is deliberately not zero-reward.
type LaunchOutcome struct {
	Tier     LaunchTier `json:"tier"`
	XPReward int        `json:"xpReward"`
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
}

// ClassifyLaunch maps (stability, efficiency) to an outcome tier. Branches are
// evaluated in order, first match wins; only stability gates the third tier.
func ClassifyLaunch(stability, efficiency int) LaunchOutcome {
	switch {
	case stability >= 80 && efficiency >= 80:
		return LaunchOutcome{
			Tier:     PerfectLaunch,
			XPReward: 200,
			Success:  true,
			Message:  "Perfect Launch! Your rocket reached orbit successfully!",
		}
	case stability >= 60 && efficiency >= 60:
		return LaunchOutcome{
			Tier:     GoodLaunch,
			XPReward: 150,
			Success:  true,
			Message:  "Good Launch! Your rocket reached space but needs optimization.",
		}
	case stability >= 40:
		return LaunchOutcome{
			Tier:     PartialSuccess,
			XPReward: 100,
			Message:  "Partial Success. Your rocket launched but didn't reach orbit.",
		}
	default:
		return LaunchOutcome{
			Tier:     LaunchFailed,
			XPReward: 50,
			Message:  "Launch Failed! Your rocket was unstable and crashed.",
		}
	}
}

// RocketDesign is an immutable snapshot persisted after a successful launch,
// distinct from the live assembly state that produced it.
type RocketDesign struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Name          string      `json:"name"`
	Parts         RocketParts `json:"parts"`
	Stability     int         `json:"stability"`
	Efficiency    int         `json:"efficiency"`
	LaunchSuccess bool        `json:"launchSuccess"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// PartPlacementXP is the fixed reward for a successful part drop.
const PartPlacementXP = 10
