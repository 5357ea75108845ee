package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin     = "join"
	MsgMove     = "move"
	MsgShoot    = "shoot"
	MsgUpgrade  = "upgrade"
	MsgVote     = "vote_rematch"
	MsgPing     = "ping"
	MsgRegister = "register"
	MsgLogin    = "login"
	MsgAuth     = "auth"
	MsgProfile  = "profile"
)

// Server -> Client message types
const (
	MsgState       = "state"
	MsgJoined      = "joined"
	MsgError       = "error"
	MsgMoveAck     = "move_ack"
	MsgShootAck    = "shoot_ack"
	MsgUpgradeAck  = "upgrade_ack"
	MsgVoteAck     = "vote_ack"
	MsgKillFeed    = "killfeed"
	MsgCaptureFeed = "capturefeed"
	MsgPong        = "pong"
	MsgPlayerJoin  = "player_joined"
	MsgPlayerLeft  = "player_left"
	MsgMatchOver   = "match_over"
	MsgAuthOK      = "auth_ok"
	MsgProfileData = "profile_data"
)

// MsgChat is both directions: inbound chat line, outbound broadcast
const MsgChat = "chat"

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// JoinMsg requests a seat in the match
type JoinMsg struct {
	Name string `json:"name"`
}

// MoveMsg replaces the tank's waypoint queue
type MoveMsg struct {
	Path []Hex `json:"path"`
}

// ShootMsg fires at a target cell
type ShootMsg struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// UpgradeMsg buys one level of an upgrade category
type UpgradeMsg struct {
	Kind string `json:"kind"`
}

// ChatMsg carries a chat line; the simulation never inspects it beyond trimming
type ChatMsg struct {
	Text string `json:"text"`
}

// TankPrivate holds fields only the owning player may see
type TankPrivate struct {
	Fuel      float64        `json:"fuel" msgpack:"fuel"`
	Ammo      float64        `json:"ammo" msgpack:"ammo"`
	Gears     float64        `json:"gears" msgpack:"gears"`
	MoveSpeed float64        `json:"move_speed" msgpack:"mv"`
	Vision    int            `json:"vision" msgpack:"vis"`
	AmmoCost  float64        `json:"ammo_cost" msgpack:"ac"`
	Upgrades  map[string]int `json:"upgrades" msgpack:"up"`
	RespawnT  float64        `json:"respawn_timer" msgpack:"rt"`
}

// TankState is the per-viewer serialized tank
type TankState struct {
	ID       string       `json:"id" msgpack:"id"`
	PlayerID string       `json:"player_id" msgpack:"pid"`
	Q        float64      `json:"q" msgpack:"q"`
	R        float64      `json:"r" msgpack:"r"`
	HP       int          `json:"hp" msgpack:"hp"`
	MaxHP    int          `json:"max_hp" msgpack:"mhp"`
	Alive    bool         `json:"alive" msgpack:"a"`
	Color    string       `json:"color" msgpack:"c"`
	Facing   float64      `json:"facing" msgpack:"f"`
	Score    int          `json:"score" msgpack:"sc"`
	Path     []Hex        `json:"path" msgpack:"path"`
	Private  *TankPrivate `json:"private,omitempty" msgpack:"priv,omitempty"`
}

// FortState is the serialized fort
type FortState struct {
	ID        string  `json:"id" msgpack:"id"`
	Q         int     `json:"q" msgpack:"q"`
	R         int     `json:"r" msgpack:"r"`
	Type      string  `json:"ftype" msgpack:"ft"`
	Owner     string  `json:"owner" msgpack:"o"`
	Progress  float64 `json:"capture_progress" msgpack:"cp"`
	Contester string  `json:"capturing_player" msgpack:"cpl"`
	WasOwned  bool    `json:"was_owned" msgpack:"wo"`
}

// ShellState is the serialized shell
type ShellState struct {
	ID      string  `json:"id" msgpack:"id"`
	OwnerID string  `json:"owner_id" msgpack:"o"`
	Q       float64 `json:"q" msgpack:"q"`
	R       float64 `json:"r" msgpack:"r"`
	TargetQ int     `json:"target_q" msgpack:"tq"`
	TargetR int     `json:"target_r" msgpack:"tr"`
}

// LeaderboardRow is one scoreboard entry, sorted by score descending
type LeaderboardRow struct {
	PlayerID string `json:"pid" msgpack:"pid"`
	Name     string `json:"name" msgpack:"n"`
	Score    int    `json:"score" msgpack:"sc"`
	Color    string `json:"color" msgpack:"c"`
	Forts    int    `json:"forts" msgpack:"f"`
	Kills    int    `json:"kills" msgpack:"k"`
	Deaths   int    `json:"deaths" msgpack:"d"`
	Captures int    `json:"captures" msgpack:"cap"`
}

// VoteState is the rematch tally shown on the match-over screen
type VoteState struct {
	Cast     int      `json:"cast" msgpack:"cast"`
	Total    int      `json:"total" msgpack:"total"`
	VotedIDs []string `json:"voted_pids" msgpack:"pids"`
	MyVoted  bool     `json:"my_voted" msgpack:"my"`
}

// Snapshot is the per-player fog-of-war view pushed every tick
type Snapshot struct {
	Tick        uint64           `json:"tick" msgpack:"tick"`
	PlayerID    string           `json:"player_id" msgpack:"pid"`
	Tanks       []TankState      `json:"tanks" msgpack:"tanks"`
	Forts       []FortState      `json:"forts" msgpack:"forts"`
	Shells      []ShellState     `json:"shells" msgpack:"shells"`
	Visible     []Hex            `json:"visible_hexes" msgpack:"vis"`
	Leaderboard []LeaderboardRow `json:"leaderboard" msgpack:"lb"`
	MapRadius   int              `json:"map_radius" msgpack:"mr"`
	MatchTimer  float64          `json:"match_timer" msgpack:"mt"`
	MatchOver   bool             `json:"match_over" msgpack:"mo"`
	PostTimer   float64          `json:"post_match_timer" msgpack:"pt"`
	Votes       VoteState        `json:"votes" msgpack:"votes"`
	WinnerName  string           `json:"winner_name,omitempty" msgpack:"wn,omitempty"`
	WinnerColor string           `json:"winner_color,omitempty" msgpack:"wc,omitempty"`
}

// FeedEvent is a queued kill/capture notification, drained once per tick
type FeedEvent struct {
	Type        string  `json:"type" msgpack:"t"`
	Killer      string  `json:"killer,omitempty" msgpack:"k,omitempty"`
	KillerColor string  `json:"killer_color,omitempty" msgpack:"kc,omitempty"`
	Victim      string  `json:"victim,omitempty" msgpack:"v,omitempty"`
	VictimColor string  `json:"victim_color,omitempty" msgpack:"vc,omitempty"`
	Player      string  `json:"player,omitempty" msgpack:"p,omitempty"`
	Color       string  `json:"color,omitempty" msgpack:"c,omitempty"`
	FortType    string  `json:"fort_type,omitempty" msgpack:"ft,omitempty"`
	TS          float64 `json:"ts" msgpack:"ts"`
}

// JoinedMsg is sent to a player who successfully joined
type JoinedMsg struct {
	PlayerID        string       `json:"player_id"`
	Color           string       `json:"color"`
	Upgrades        []UpgradeDef `json:"upgrades"`
	UpgradeMaxLevel int          `json:"upgrade_max_level"`
	MapRadius       int          `json:"map_radius"`
}

// MoveAckMsg confirms a path replacement
type MoveAckMsg struct {
	Path []Hex `json:"path"`
}

// ShootAckMsg confirms a fired shell
type ShootAckMsg struct {
	ShellID string `json:"shell_id"`
}

// UpgradeAckMsg confirms a purchased upgrade level
type UpgradeAckMsg struct {
	Kind     string `json:"kind"`
	Level    int    `json:"level"`
	MaxLevel int    `json:"max_level"`
}

// VoteAckMsg confirms a rematch vote
type VoteAckMsg struct {
	Voted int `json:"voted"`
	Total int `json:"total"`
}

// ChatOutMsg is a broadcast chat line
type ChatOutMsg struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Text  string  `json:"text"`
	TS    float64 `json:"ts"`
}

// PlayerJoinedMsg announces a new player to everyone
type PlayerJoinedMsg struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PlayerLeftMsg announces a disconnect
type PlayerLeftMsg struct {
	PlayerID string `json:"player_id"`
}

// MatchOverMsg is broadcast once when the match ends
type MatchOverMsg struct {
	Leaderboard []LeaderboardRow `json:"leaderboard"`
}

// ErrorMsg sends a command failure to the issuing client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// RegisterMsg creates a persistent account
type RegisterMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginMsg authenticates an existing account
type LoginMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthMsg resumes a session from a stored token
type AuthMsg struct {
	Token string `json:"token"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	PlayerID int64  `json:"player_id"`
}

// ProfileDataMsg carries persistent career stats
type ProfileDataMsg struct {
	Username string  `json:"username"`
	Score    int     `json:"score"`
	Kills    int     `json:"kills"`
	Deaths   int     `json:"deaths"`
	Captures int     `json:"captures"`
	Matches  int     `json:"matches"`
	Playtime float64 `json:"playtime"`
}
