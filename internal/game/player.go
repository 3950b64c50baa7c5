package game

// AttackType identifies which attack a player is currently performing.
type AttackType string

const (
	AttackNone  AttackType = ""
	AttackLight AttackType = "light"
	AttackHeavy AttackType = "heavy"
)

// Vec2 is a 2D vector in stage pixels (positions) or px/s (velocities).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Player is the full per-participant state. It is a value type on purpose:
// the rule engine takes and returns copies, prediction replays on owned
// copies, and snapshots are built by plain assignment. Nothing in the core
// ever shares a *Player across goroutines.
type Player struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Character string `json:"character"`

	Position  Vec2 `json:"position"`
	Velocity  Vec2 `json:"velocity"`
	Direction int  `json:"direction"` // +1 facing right, -1 facing left

	Damage float64 `json:"damage"` // accumulated percentage, uncapped
	Stocks int     `json:"stocks"`

	IsJumping   bool       `json:"isJumping"`
	IsAttacking bool       `json:"isAttacking"`
	AttackType  AttackType `json:"attackType"`

	// AttackTimeLeft is the seconds remaining until the current attack
	// auto-releases. It lives on the player and is decremented inside
	// Advance each step instead of being scheduled as a detached timer,
	// which keeps the rule engine pure and removes the "player vanished
	// before the timer fired" failure mode.
	AttackTimeLeft float64 `json:"-"`

	// LastInput is the most recent input sample the authoritative
	// simulation holds for this player; LastProcessedInput is its sequence
	// number, echoed back so the client can trim its pending-input queue.
	LastInput          Input  `json:"-"`
	LastProcessedInput uint64 `json:"lastProcessedInput"`
}

// NewPlayer creates a lobby player with default spawn kinematics.
func NewPlayer(id, username string, stocks int) Player {
	return Player{
		ID:        id,
		Username:  username,
		Character: DefaultCharacterID,
		Position:  Vec2{X: 400, Y: 300},
		Direction: 1,
		Stocks:    stocks,
	}
}

// Out reports whether the player has been eliminated for the match.
// Out players are frozen until the room resets.
func (p Player) Out() bool { return p.Stocks <= 0 }

// respawnAt resets kinematics and combat state at the given point,
// preserving identity, stocks and networking state.
func (p Player) respawnAt(at Vec2) Player {
	p.Position = at
	p.Velocity = Vec2{}
	p.Damage = 0
	p.IsJumping = false
	p.IsAttacking = false
	p.AttackType = AttackNone
	p.AttackTimeLeft = 0
	return p
}
