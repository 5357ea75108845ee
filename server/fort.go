package main

const (
	FortCount       = 12  // 4 fuel, 4 ammo, 2 gear, 2 mixed
	CaptureTime     = 5.0 // seconds to capture a never-owned fort
	RecaptureMul    = 1.5 // capture takes longer once a fort has been owned
	FortReleaseKeep = 2   // forts a victim keeps on death, rest go neutral
	FortFuelGen     = 1.2 // fuel per second per fort
	FortAmmoGen     = 0.9
	FortGearGen     = 0.10
)

// Fort resource types
const (
	FortFuel  = "fuel"
	FortAmmo  = "ammo"
	FortGear  = "gear"
	FortMixed = "mixed"
)

// Fort is a capturable resource node
type Fort struct {
	ID        string
	Cell      Hex
	Type      string
	Owner     string // player id, "" when neutral
	Progress  float64
	Contester string // player id currently filling the capture bar
	WasOwned  bool   // true once any player has ever owned this fort
}

// EffectiveCaptureTime returns the progress required for an ownership
// transfer, including the recapture penalty for previously-owned forts
func (f *Fort) EffectiveCaptureTime() float64 {
	if f.WasOwned {
		return CaptureTime * RecaptureMul
	}
	return CaptureTime
}

// Release clears ownership and any running contest. WasOwned is preserved
// so the fort stays "hot" for recapture.
func (f *Fort) Release() {
	f.Owner = ""
	f.Progress = 0
	f.Contester = ""
}

// Produces reports whether the fort generates the given resource type
func (f *Fort) Produces(resource string) bool {
	return f.Type == resource || f.Type == FortMixed
}

// ToState serializes the fort for snapshots
func (f *Fort) ToState() FortState {
	return FortState{
		ID:        f.ID,
		Q:         f.Cell.Q,
		R:         f.Cell.R,
		Type:      f.Type,
		Owner:     f.Owner,
		Progress:  f.Progress,
		Contester: f.Contester,
		WasOwned:  f.WasOwned,
	}
}
