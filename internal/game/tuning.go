package game

// Physics constants. These are server-authoritative and shared verbatim by
// client prediction; changing one side without the other breaks convergence.
const (
	Gravity          float64 = 980.0  // px/s^2
	TerminalVelocity float64 = 1000.0 // max falling speed, px/s
	RunSpeed         float64 = 400.0  // horizontal speed while a direction is held
	Friction         float64 = 0.9    // geometric decay per step with no input
	JumpImpulse      float64 = 600.0  // upward velocity on jump, px/s

	// Hitbox half-extents, shared by platform snapping, boundary clamping
	// and combat range checks.
	HalfWidth  float64 = 30.0
	HalfHeight float64 = 40.0
)

// Attack tuning per attack type.
const (
	LightAttackDuration float64 = 0.2 // seconds
	HeavyAttackDuration float64 = 0.5

	LightAttackRange float64 = 60.0
	HeavyAttackRange float64 = 100.0

	LightAttackDamage float64 = 5.0
	HeavyAttackDamage float64 = 15.0

	LightKnockbackForce float64 = 200.0
	HeavyKnockbackForce float64 = 500.0

	// Vertical knockback is the same for both attack types, scaled by the
	// defender's accumulated damage.
	KnockbackLift float64 = 300.0
)

// NominalDT is the fixed per-input delta used when the client replays
// unacknowledged inputs during reconciliation (roughly one 60 Hz frame).
// Replay deliberately ignores the original wall-clock spacing of the inputs;
// the scheme guarantees convergence with the server, not frame-exact
// agreement.
const NominalDT float64 = 1.0 / 60.0

// Respawn drop height below the top stage boundary.
const respawnDropY float64 = 100.0
