package main

const (
	TankMaxHP     = 100
	TankStartFuel = 80.0
	TankStartAmmo = 50.0
	FuelCap       = 120.0
	AmmoCap       = 100.0
	GearCap       = 99.0
	FuelPerHex    = 4.0 // fuel cost per hex moved
	AmmoShoot     = 8.0 // ammo cost per shot
	MoveSpeedBase = 2.5 // hexes per second
	FogRange      = 3   // base vision radius in hexes
	ShellBaseDmg  = 40
	RespawnTime   = 8.0 // seconds
	FireCooldown  = 0.8 // seconds between shots
)

// spawnSlots are the fixed starting cells; join assigns them round-robin,
// respawn picks one at random
var spawnSlots = []Hex{
	{0, 4}, {-4, 0}, {0, -4}, {4, -4}, {4, 0}, {-4, 4},
}

// Tank is the simulation unit owned by one player
type Tank struct {
	ID        string
	PlayerID  string
	Q, R      float64 // continuous axial position
	Path      []Hex   // remaining waypoints, head first
	HP        int
	MaxHP     int
	Fuel      float64
	Ammo      float64
	Gears     float64
	MoveSpeed float64
	Vision    int
	ShellDmg  int
	AmmoCost  float64
	Alive     bool
	RespawnT  float64 // respawn countdown remaining
	Color     string
	Facing    float64 // radians
	Upgrades  map[string]int
	LastShot  float64 // game clock seconds of the last shot
	Score     int
	Kills     int
	Deaths    int
	Captures  int
}

// NewTank creates a tank at the given spawn cell with match defaults
func NewTank(id, playerID string, spawn Hex, color string) *Tank {
	return &Tank{
		ID:        id,
		PlayerID:  playerID,
		Q:         float64(spawn.Q),
		R:         float64(spawn.R),
		HP:        TankMaxHP,
		MaxHP:     TankMaxHP,
		Fuel:      TankStartFuel,
		Ammo:      TankStartAmmo,
		MoveSpeed: MoveSpeedBase,
		Vision:    FogRange,
		ShellDmg:  ShellBaseDmg,
		AmmoCost:  AmmoShoot,
		Alive:     true,
		Color:     color,
		Upgrades:  make(map[string]int),
	}
}

// Cell returns the rounded cell the tank currently occupies
func (t *Tank) Cell() Hex {
	return roundHex(t.Q, t.R)
}

// TakeDamage reduces HP and returns true if the tank died
func (t *Tank) TakeDamage(dmg int) bool {
	if !t.Alive {
		return false
	}
	t.HP -= dmg
	if t.HP <= 0 {
		t.HP = 0
		t.Alive = false
		t.RespawnT = RespawnTime
		t.Path = nil
		return true
	}
	return false
}

// Reset returns the tank to match-start defaults at the given spawn cell.
// Used on match reset; the tank itself survives across matches.
func (t *Tank) Reset(spawn Hex) {
	t.Q = float64(spawn.Q)
	t.R = float64(spawn.R)
	t.Path = nil
	t.HP = TankMaxHP
	t.MaxHP = TankMaxHP
	t.Fuel = TankStartFuel
	t.Ammo = TankStartAmmo
	t.Gears = 0
	t.MoveSpeed = MoveSpeedBase
	t.Vision = FogRange
	t.ShellDmg = ShellBaseDmg
	t.AmmoCost = AmmoShoot
	t.Alive = true
	t.RespawnT = 0
	t.Facing = 0
	t.Upgrades = make(map[string]int)
	t.LastShot = 0
	t.Score = 0
	t.Kills = 0
	t.Deaths = 0
	t.Captures = 0
}

// ToState serializes the tank for the given viewer. Resource, upgrade and
// respawn fields are only present on the viewer's own tank.
func (t *Tank) ToState(forPlayer string) TankState {
	s := TankState{
		ID:       t.ID,
		PlayerID: t.PlayerID,
		Q:        t.Q,
		R:        t.R,
		HP:       t.HP,
		MaxHP:    t.MaxHP,
		Alive:    t.Alive,
		Color:    t.Color,
		Facing:   t.Facing,
		Score:    t.Score,
		Path:     t.Path,
	}
	if forPlayer == t.PlayerID {
		s.Private = &TankPrivate{
			Fuel:      t.Fuel,
			Ammo:      t.Ammo,
			Gears:     t.Gears,
			MoveSpeed: t.MoveSpeed,
			Vision:    t.Vision,
			AmmoCost:  t.AmmoCost,
			Upgrades:  t.Upgrades,
			RespawnT:  t.RespawnT,
		}
	}
	return s
}
