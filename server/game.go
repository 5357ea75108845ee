package main

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	TickRate     = 20 // simulation ticks per second
	TickDuration = time.Second / TickRate
	MaxTickDelta = 0.1 // seconds; a stalled tick never jumps further than this
)

const (
	ShootBaseRange = 5  // hexes, before cannon upgrades
	KillScore      = 10 // score awarded per kill
	CaptureScore   = 5  // score awarded per fort capture
)

// Death loot tuning. The victim loses a random portion of each resource
// but never drops below the floor; the killer receives gears only.
const (
	LootMinRatio  = 0.20
	LootMaxRatio  = 0.60
	LootFuelFloor = 15.0
	LootAmmoFloor = 10.0
	LootGearFloor = 0.0
	KillGearMin   = 5.0
)

// Command validation errors. A failed command never touches shared state.
var (
	ErrGameFull          = errors.New("game full")
	ErrTankUnavailable   = errors.New("tank not available")
	ErrCooldown          = errors.New("cooldown")
	ErrInsufficientAmmo  = errors.New("not enough ammo")
	ErrOutOfRange        = errors.New("out of range")
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
	ErrMaxLevel          = errors.New("max level reached")
	ErrInsufficientGears = errors.New("not enough gears")
	ErrMatchActive       = errors.New("match not over")
)

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// MatchRecorder persists a finished match. Called off the tick goroutine.
type MatchRecorder interface {
	RecordMatch(duration float64, rows []LeaderboardRow, authIDs map[string]int64)
}

// PlayerInfo is the identity half of a player; the Tank is the unit half
type PlayerInfo struct {
	ID     string
	Name   string
	Color  string
	Slot   int   // deterministic spawn slot assigned at join
	AuthID int64 // persistent account id, 0 for guests
}

// Game owns all shared simulation state. Exactly one mutation path runs at
// a time: commands lock for their duration, the tick locks for the whole
// step. Nothing here blocks on I/O.
type Game struct {
	mu         sync.RWMutex
	players    map[string]*PlayerInfo // player id -> identity
	tanks      map[string]*Tank       // player id -> tank
	forts      map[string]*Fort
	shells     map[string]*Shell
	clients    map[string]Broadcaster // player id -> connection
	match      MatchState
	tick       uint64
	clock      float64 // simulation seconds, drives cooldowns and shell age
	matchStart float64 // clock value when the current match began
	pending    []FeedEvent
	rng        *rand.Rand
	joined     int // total joins ever, for color/spawn rotation

	running   bool
	stop      chan struct{}
	lastTick  time.Time
	recorder  MatchRecorder
	analytics *Analytics
}

// NewGame creates a game with a freshly generated fort layout. The random
// source drives fort placement, loot rolls and respawn slots; tests pass a
// seeded one to reproduce exact outcomes.
func NewGame(rng *rand.Rand) *Game {
	g := &Game{
		players: make(map[string]*PlayerInfo),
		tanks:   make(map[string]*Tank),
		forts:   make(map[string]*Fort),
		shells:  make(map[string]*Shell),
		clients: make(map[string]Broadcaster),
		match:   NewMatchState(),
		rng:     rng,
		stop:    make(chan struct{}),
	}
	g.generateForts()
	return g
}

// generateForts places FortCount forts on random cells at least 3 hexes
// from the map center: 4 fuel, 4 ammo, 2 gear, 2 mixed
func (g *Game) generateForts() {
	var cells []Hex
	for _, h := range MapHexes(MapRadius) {
		if HexDistance(h, Hex{0, 0}) >= 3 {
			cells = append(cells, h)
		}
	}
	g.rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
	types := []string{
		FortFuel, FortFuel, FortFuel, FortFuel,
		FortAmmo, FortAmmo, FortAmmo, FortAmmo,
		FortGear, FortGear, FortMixed, FortMixed,
	}
	for i, ft := range types {
		if i >= len(cells) {
			break
		}
		id := "fort_" + strconv.Itoa(i)
		g.forts[id] = &Fort{ID: id, Cell: cells[i], Type: ft}
	}
}

// SetRecorder attaches the match persistence sink
func (g *Game) SetRecorder(r MatchRecorder) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recorder = r
}

// SetAnalytics attaches the async event tracker
func (g *Game) SetAnalytics(a *Analytics) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.analytics = a
}

// AddPlayer seats a new player and spawns their tank at the next slot
func (g *Game) AddPlayer(name string, authID int64) (*PlayerInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.players) >= MaxPlayers {
		return nil, ErrGameFull
	}
	pid := GenerateID(4)
	slot := g.joined % len(spawnSlots)
	color := playerColors[g.joined%len(playerColors)]
	g.joined++

	info := &PlayerInfo{ID: pid, Name: name, Color: color, Slot: slot, AuthID: authID}
	g.players[pid] = info
	g.tanks[pid] = NewTank("tank_"+pid, pid, spawnSlots[slot], color)
	g.tanks[pid].LastShot = -FireCooldown
	return info, nil
}

// RemovePlayer drops a player and forfeits their forts. WasOwned stays set
// so a disconnected player's forts remain slow to recapture.
func (g *Game) RemovePlayer(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.players, playerID)
	delete(g.tanks, playerID)
	delete(g.clients, playerID)
	delete(g.match.RematchVotes, playerID)
	for _, f := range g.forts {
		if f.Owner == playerID || f.Contester == playerID {
			f.Release()
		}
	}
}

// SetClient associates a connection with a player
func (g *Game) SetClient(playerID string, client Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[playerID] = client
}

// Player returns a copy of a player's identity
func (g *Game) Player(playerID string) (PlayerInfo, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.players[playerID]
	if !ok {
		return PlayerInfo{}, false
	}
	return *p, true
}

// PlayerCount returns the number of seated players
func (g *Game) PlayerCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.players)
}

// SetPath replaces the tank's waypoint queue. An empty path halts the tank.
func (g *Game) SetPath(playerID string, path []Hex) ([]Hex, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.tanks[playerID]
	if t == nil || !t.Alive {
		return nil, ErrTankUnavailable
	}
	t.Path = append([]Hex(nil), path...)
	return t.Path, nil
}

// Shoot validates cooldown, ammo and range, then launches a shell toward
// the target cell. All gates pass before anything is debited.
func (g *Game) Shoot(playerID string, target Hex) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.tanks[playerID]
	if t == nil || !t.Alive {
		return "", ErrTankUnavailable
	}
	if g.clock-t.LastShot < FireCooldown {
		return "", ErrCooldown
	}
	if t.Ammo < t.AmmoCost {
		return "", ErrInsufficientAmmo
	}
	maxRange := ShootBaseRange + t.Upgrades["cannon"]
	if HexDistance(t.Cell(), target) > maxRange {
		return "", ErrOutOfRange
	}

	t.LastShot = g.clock
	t.Ammo -= t.AmmoCost
	sid := GenerateID(4)
	g.shells[sid] = &Shell{
		ID:      sid,
		OwnerID: playerID,
		Q:       t.Q,
		R:       t.R,
		Target:  target,
		Speed:   ShellSpeed,
		Damage:  t.ShellDmg + t.Upgrades["cannon"]*5,
		Created: g.clock,
	}
	return sid, nil
}

// Upgrade buys one level of a category, debiting the escalating gear cost
func (g *Game) Upgrade(playerID, kind string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.tanks[playerID]
	if t == nil {
		return 0, ErrTankUnavailable
	}
	if !upgradeKinds[kind] {
		return 0, ErrUnknownUpgrade
	}
	lvl := t.Upgrades[kind]
	if lvl >= UpgradeMaxLevel {
		return 0, ErrMaxLevel
	}
	cost := upgradeLevelCosts[lvl]
	if t.Gears < cost {
		return 0, ErrInsufficientGears
	}
	t.Gears -= cost
	t.Upgrades[kind] = lvl + 1
	applyUpgrade(t, kind)
	return lvl + 1, nil
}

// CastVote records a rematch vote; the match resets immediately once every
// seated player has voted
func (g *Game) CastVote(playerID string) (cast, total int, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.match.Over {
		return 0, 0, ErrMatchActive
	}
	total = len(g.tanks)
	cast, all := g.match.Vote(playerID, total)
	if all {
		g.resetMatch()
	}
	return cast, total, nil
}

// Chat relays a trimmed chat line to everyone; the simulation state is
// never touched
func (g *Game) Chat(playerID, text string) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	p, ok := g.players[playerID]
	if !ok {
		return ErrTankUnavailable
	}
	g.broadcastLocked(Envelope{T: MsgChat, Data: ChatOutMsg{
		Name:  p.Name,
		Color: p.Color,
		Text:  text,
		TS:    nowSeconds(),
	}})
	return nil
}

// Advance runs one simulation step. Sub-phase order is load-bearing:
// match clock, movement, ballistics, captures, economy, respawns.
func (g *Game) Advance(dt float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.advanceLocked(dt)
}

func (g *Game) advanceLocked(dt float64) {
	dt = Clamp(dt, 0, MaxTickDelta)
	g.clock += dt

	if !g.match.Over {
		g.match.Timer -= dt
		if g.match.Timer <= 0 {
			g.match.Timer = 0
			g.endMatch()
		}
	}
	if g.match.Over {
		g.match.PostTimer -= dt
		if g.match.PostTimer <= 0 {
			g.resetMatch()
		}
		return
	}

	g.moveTanks(dt)
	g.moveShells(dt)
	g.updateCaptures(dt)
	g.generateResources(dt)
	g.checkRespawns(dt)
	g.tick++
}

// moveTanks walks each tank along its waypoint queue. Snapping onto a
// waypoint costs FuelPerHex; a tank that cannot pay halts with its path
// cleared, mid-interpolation motion already committed is kept.
func (g *Game) moveTanks(dt float64) {
	for _, t := range g.tanks {
		if !t.Alive || len(t.Path) == 0 {
			continue
		}
		head := t.Path[0]
		dq := float64(head.Q) - t.Q
		dr := float64(head.R) - t.R
		dist := math.Sqrt(dq*dq + dr*dr)
		step := t.MoveSpeed * dt
		if dist <= step {
			if t.Fuel < FuelPerHex {
				t.Path = nil
				continue
			}
			t.Fuel -= FuelPerHex
			t.Q = float64(head.Q)
			t.R = float64(head.R)
			t.Path = t.Path[1:]
		} else {
			t.Facing = math.Atan2(dr, dq)
			t.Q += dq / dist * step
			t.R += dr / dist * step
		}
	}
}

func (g *Game) moveShells(dt float64) {
	for sid, s := range g.shells {
		if s.Advance(dt, g.clock) {
			delete(g.shells, sid)
			g.shellImpact(s)
		}
	}
}

// shellImpact damages every living enemy tank within ShellSplash hexes of
// the target cell and resolves deaths: score, loot, fort forfeiture, feed.
func (g *Game) shellImpact(s *Shell) {
	for pid, t := range g.tanks {
		if pid == s.OwnerID || !t.Alive {
			continue
		}
		if HexDistance(t.Cell(), s.Target) > ShellSplash {
			continue
		}
		if !t.TakeDamage(s.Damage) {
			continue
		}
		t.Deaths++
		if shooter := g.tanks[s.OwnerID]; shooter != nil {
			shooter.Score += KillScore
			shooter.Kills++
			gearLost := g.lootVictim(t)

			// Killer receives gears only, at least the minimum roll;
			// fuel and ammo penalties stay with the victim.
			gained := KillGearMin + g.rng.Float64()*(math.Max(KillGearMin, gearLost)-KillGearMin)
			shooter.Gears = math.Min(GearCap, shooter.Gears+gained)

			g.forfeitForts(pid, t)
		}
		g.queueKillFeed(s.OwnerID, pid)
	}
}

// lootVictim strips a random portion of each resource from a dead tank,
// respecting the per-resource floors. Returns the gears actually lost.
func (g *Game) lootVictim(t *Tank) float64 {
	fuelRatio := LootMinRatio + g.rng.Float64()*(LootMaxRatio-LootMinRatio)
	ammoRatio := LootMinRatio + g.rng.Float64()*(LootMaxRatio-LootMinRatio)
	gearRatio := LootMinRatio + g.rng.Float64()*(LootMaxRatio-LootMinRatio)

	fuelLost := math.Max(0, math.Min(t.Fuel*fuelRatio, t.Fuel-LootFuelFloor))
	ammoLost := math.Max(0, math.Min(t.Ammo*ammoRatio, t.Ammo-LootAmmoFloor))
	gearLost := math.Max(0, math.Min(t.Gears*gearRatio, t.Gears-LootGearFloor))

	t.Fuel = math.Max(LootFuelFloor, t.Fuel-fuelLost)
	t.Ammo = math.Max(LootAmmoFloor, t.Ammo-ammoLost)
	t.Gears = math.Max(LootGearFloor, t.Gears-gearLost)
	return gearLost
}

// forfeitForts releases the victim's forts beyond the kept count, farthest
// from the death position first. Distance here is the straight coordinate
// offset |dq|+|dr|, not hex distance — release ordering depends on it.
func (g *Game) forfeitForts(victimID string, t *Tank) {
	var owned []*Fort
	for _, f := range g.forts {
		if f.Owner == victimID {
			owned = append(owned, f)
		}
	}
	if len(owned) <= FortReleaseKeep {
		return
	}
	offset := func(f *Fort) float64 {
		return math.Abs(float64(f.Cell.Q)-t.Q) + math.Abs(float64(f.Cell.R)-t.R)
	}
	sort.Slice(owned, func(i, j int) bool {
		return offset(owned[i]) > offset(owned[j])
	})
	for _, f := range owned[FortReleaseKeep:] {
		f.Release()
	}
}

// updateCaptures runs the per-fort contest state machine, driven by the
// count of living tanks standing on the fort's cell
func (g *Game) updateCaptures(dt float64) {
	occupants := make(map[Hex][]string)
	for pid, t := range g.tanks {
		if t.Alive {
			occupants[t.Cell()] = append(occupants[t.Cell()], pid)
		}
	}

	for _, f := range g.forts {
		on := occupants[f.Cell]
		switch {
		case len(on) == 0:
			// nobody here: any running contest bleeds out
			if f.Contester != "" && f.Progress > 0 {
				f.Progress = math.Max(0, f.Progress-dt*0.5)
				if f.Progress == 0 {
					f.Contester = ""
				}
			}
		case len(on) == 1:
			pid := on[0]
			if f.Owner == pid {
				break // standing on your own fort does nothing
			}
			if f.Contester == pid {
				f.Progress += dt
				if f.Progress >= f.EffectiveCaptureTime() {
					g.completeCapture(f, pid)
				}
			} else {
				// takeover: contest reassigns, progress bleeds rather
				// than resetting outright
				f.Contester = pid
				f.Progress = math.Max(0, f.Progress-dt*1.5)
			}
		default:
			// crowded fort: progress decays fast regardless of owner
			f.Progress = math.Max(0, f.Progress-dt*2)
		}
	}
}

func (g *Game) completeCapture(f *Fort, pid string) {
	f.Progress = 0
	f.Owner = pid
	f.WasOwned = true
	f.Contester = ""
	if t := g.tanks[pid]; t != nil {
		t.Score += CaptureScore
		t.Captures++
	}
	g.queueCaptureFeed(pid, f.Type)
}

// generateResources credits each fort owner's living tank at the per-type
// rates, clamped to the resource caps. Dead tanks accrue nothing.
func (g *Game) generateResources(dt float64) {
	for _, f := range g.forts {
		if f.Owner == "" {
			continue
		}
		t := g.tanks[f.Owner]
		if t == nil || !t.Alive {
			continue
		}
		if f.Produces(FortFuel) {
			t.Fuel = math.Min(FuelCap, t.Fuel+FortFuelGen*dt)
		}
		if f.Produces(FortAmmo) {
			t.Ammo = math.Min(AmmoCap, t.Ammo+FortAmmoGen*dt)
		}
		if f.Produces(FortGear) {
			t.Gears = math.Min(GearCap, t.Gears+FortGearGen*dt)
		}
	}
}

func (g *Game) checkRespawns(dt float64) {
	for _, t := range g.tanks {
		if t.Alive {
			continue
		}
		t.RespawnT -= dt
		if t.RespawnT <= 0 {
			spawn := spawnSlots[g.rng.Intn(len(spawnSlots))]
			t.Alive = true
			t.HP = t.MaxHP
			t.RespawnT = 0
			t.Q = float64(spawn.Q)
			t.R = float64(spawn.R)
			t.Path = nil
		}
	}
}

func (g *Game) endMatch() {
	g.match.End()
}

// resetMatch reinitializes tanks, forts, shells and the match clock while
// preserving player identities
func (g *Game) resetMatch() {
	for pid, t := range g.tanks {
		slot := 0
		if p := g.players[pid]; p != nil {
			slot = p.Slot
		}
		t.Reset(spawnSlots[slot])
		t.LastShot = -FireCooldown
	}
	for _, f := range g.forts {
		f.Release()
		f.WasOwned = false
	}
	g.shells = make(map[string]*Shell)
	g.pending = g.pending[:0]
	g.match.Reset()
	g.matchStart = g.clock
}

// DrainEvents returns and clears the queued feed events
func (g *Game) DrainEvents() []FeedEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.drainEventsLocked()
}

func (g *Game) drainEventsLocked() []FeedEvent {
	if len(g.pending) == 0 {
		return nil
	}
	out := g.pending
	g.pending = nil
	return out
}

func (g *Game) queueKillFeed(killerID, victimID string) {
	evt := FeedEvent{
		Type:        MsgKillFeed,
		Killer:      "?",
		KillerColor: "#fff",
		Victim:      "?",
		VictimColor: "#888",
		TS:          nowSeconds(),
	}
	if p := g.players[killerID]; p != nil {
		evt.Killer, evt.KillerColor = p.Name, p.Color
	}
	if p := g.players[victimID]; p != nil {
		evt.Victim, evt.VictimColor = p.Name, p.Color
	}
	g.pending = append(g.pending, evt)
}

func (g *Game) queueCaptureFeed(playerID, fortType string) {
	evt := FeedEvent{
		Type:     MsgCaptureFeed,
		Player:   "?",
		Color:    "#fff",
		FortType: fortType,
		TS:       nowSeconds(),
	}
	if p := g.players[playerID]; p != nil {
		evt.Player, evt.Color = p.Name, p.Color
	}
	g.pending = append(g.pending, evt)
}

// StateFor builds the fog-of-war snapshot for one player. Visibility is
// recomputed from live positions on every call, never cached.
func (g *Game) StateFor(playerID string) (Snapshot, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stateForLocked(playerID)
}

func (g *Game) stateForLocked(playerID string) (Snapshot, bool) {
	me := g.tanks[playerID]
	if me == nil {
		return Snapshot{}, false
	}

	visList := HexRange(me.Cell(), me.Vision)
	visible := make(map[Hex]bool, len(visList))
	for _, h := range visList {
		visible[h] = true
	}

	snap := Snapshot{
		Tick:       g.tick,
		PlayerID:   playerID,
		Visible:    visList,
		MapRadius:  MapRadius,
		MatchTimer: g.match.Timer,
		MatchOver:  g.match.Over,
		PostTimer:  g.match.PostTimer,
	}

	for pid, t := range g.tanks {
		if pid == playerID || visible[t.Cell()] {
			snap.Tanks = append(snap.Tanks, t.ToState(playerID))
		}
	}
	for _, f := range g.forts {
		if visible[f.Cell] || f.Owner == playerID {
			snap.Forts = append(snap.Forts, f.ToState())
		}
	}
	for _, s := range g.shells {
		if visible[s.Cell()] || s.OwnerID == playerID {
			snap.Shells = append(snap.Shells, s.ToState())
		}
	}

	snap.Leaderboard = g.leaderboardLocked()

	votedIDs := make([]string, 0, len(g.match.RematchVotes))
	for pid := range g.match.RematchVotes {
		votedIDs = append(votedIDs, pid)
	}
	snap.Votes = VoteState{
		Cast:     len(g.match.RematchVotes),
		Total:    len(g.tanks),
		VotedIDs: votedIDs,
		MyVoted:  g.match.RematchVotes[playerID],
	}

	if g.match.Over && len(snap.Leaderboard) > 0 {
		snap.WinnerName = snap.Leaderboard[0].Name
		snap.WinnerColor = snap.Leaderboard[0].Color
	}
	return snap, true
}

// leaderboardLocked builds the scoreboard sorted by score descending.
// Tie order is unspecified.
func (g *Game) leaderboardLocked() []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, len(g.tanks))
	for pid, t := range g.tanks {
		row := LeaderboardRow{
			PlayerID: pid,
			Name:     pid,
			Score:    t.Score,
			Color:    t.Color,
			Kills:    t.Kills,
			Deaths:   t.Deaths,
			Captures: t.Captures,
		}
		if p := g.players[pid]; p != nil {
			row.Name = p.Name
		}
		for _, f := range g.forts {
			if f.Owner == pid {
				row.Forts++
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
	return rows
}

// Run drives the fixed-cadence tick loop until Stop. Each pass advances
// the simulation by the measured elapsed time, drains the feed, and pushes
// per-player snapshots.
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.lastTick = time.Now()
	g.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.step()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the tick loop
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.running = false
		close(g.stop)
	}
}

func (g *Game) step() {
	g.mu.Lock()

	now := time.Now()
	dt := now.Sub(g.lastTick).Seconds()
	g.lastTick = now

	wasOver := g.match.Over
	g.advanceLocked(dt)

	events := g.drainEventsLocked()
	for _, evt := range events {
		g.broadcastLocked(Envelope{T: evt.Type, Data: evt})
		if g.analytics != nil {
			g.analytics.TrackFeed(evt)
		}
	}

	var record func()
	if g.match.Over && !wasOver {
		rows := g.leaderboardLocked()
		g.broadcastLocked(Envelope{T: MsgMatchOver, Data: MatchOverMsg{Leaderboard: rows}})
		if g.recorder != nil {
			rec, duration := g.recorder, g.clock-g.matchStart
			authIDs := make(map[string]int64, len(g.players))
			for pid, p := range g.players {
				authIDs[pid] = p.AuthID
			}
			record = func() { rec.RecordMatch(duration, rows, authIDs) }
		}
	}

	for pid, client := range g.clients {
		snap, ok := g.stateForLocked(pid)
		if !ok {
			continue
		}
		if data, err := msgpack.Marshal(snap); err == nil {
			client.SendBinary(data)
		}
	}
	g.mu.Unlock()

	// DB writes stay off the tick path
	if record != nil {
		go record()
	}
}

func (g *Game) broadcastLocked(msg Envelope) {
	for _, client := range g.clients {
		client.SendJSON(msg)
	}
}

// BroadcastJSON sends a message to every connected client
func (g *Game) BroadcastJSON(msg Envelope) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.broadcastLocked(msg)
}
