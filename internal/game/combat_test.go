package game

import (
	"testing"
)

func attacker(at AttackType) Player {
	p := NewPlayer("attacker", "attacker", 3)
	p.Position = Vec2{X: 100, Y: 300}
	p.Direction = 1
	p.IsAttacking = true
	p.AttackType = at
	return p
}

func defenderAt(x, y float64) Player {
	p := NewPlayer("defender", "defender", 3)
	p.Position = Vec2{X: x, Y: y}
	return p
}

// TestResolveAttackLightHit tests a canonical light hit: damage, knockback
// direction, lift and forced airborne state
func TestResolveAttackLightHit(t *testing.T) {
	a := attacker(AttackLight)
	d := defenderAt(140, 300)

	d = ResolveAttack(a, d)

	if d.Damage != 5 {
		t.Errorf("Expected damage 5, got %v", d.Damage)
	}
	// Multiplier uses the damage carried before this hit: 1 + 0/100.
	if d.Velocity.X != 200 {
		t.Errorf("Expected vx 200, got %v", d.Velocity.X)
	}
	if d.Velocity.Y != -300 {
		t.Errorf("Expected vy -300, got %v", d.Velocity.Y)
	}
	if !d.IsJumping {
		t.Error("Hit defender should be forced airborne")
	}
}

// TestResolveAttackHeavyHit tests heavy attack numbers
func TestResolveAttackHeavyHit(t *testing.T) {
	a := attacker(AttackHeavy)
	d := defenderAt(190, 300)

	d = ResolveAttack(a, d)

	if d.Damage != 15 {
		t.Errorf("Expected damage 15, got %v", d.Damage)
	}
	if d.Velocity.X != 500 {
		t.Errorf("Expected vx 500, got %v", d.Velocity.X)
	}
	if d.Velocity.Y != -300 {
		t.Errorf("Expected vy -300, got %v", d.Velocity.Y)
	}
}

// TestResolveAttackKnockbackScalesWithDamage tests that accumulated damage
// makes later hits launch harder
func TestResolveAttackKnockbackScalesWithDamage(t *testing.T) {
	a := attacker(AttackLight)
	d := defenderAt(140, 300)
	d.Damage = 100

	d = ResolveAttack(a, d)

	if d.Damage != 105 {
		t.Errorf("Expected damage 105, got %v", d.Damage)
	}
	if d.Velocity.X != 200*2.0 {
		t.Errorf("Expected vx %v at 100%% damage, got %v", 200*2.0, d.Velocity.X)
	}
}

// TestResolveAttackOutOfRange tests the circular range check, boundary
// inclusive miss
func TestResolveAttackOutOfRange(t *testing.T) {
	a := attacker(AttackLight)

	// Exactly at range is a miss.
	d := ResolveAttack(a, defenderAt(100+LightAttackRange, 300))
	if d.Damage != 0 {
		t.Errorf("Hit at exact range should miss, got damage %v", d.Damage)
	}

	d = ResolveAttack(a, defenderAt(300, 300))
	if d.Damage != 0 {
		t.Errorf("Distant defender should not be hit, got damage %v", d.Damage)
	}
}

// TestResolveAttackFacing tests that attacks only land on the faced side
func TestResolveAttackFacing(t *testing.T) {
	a := attacker(AttackLight)
	a.Direction = 1

	// Defender behind the attacker.
	d := ResolveAttack(a, defenderAt(60, 300))
	if d.Damage != 0 {
		t.Errorf("Attack should miss behind the attacker, got damage %v", d.Damage)
	}

	a.Direction = -1
	d = ResolveAttack(a, defenderAt(60, 300))
	if d.Damage != 5 {
		t.Errorf("Attack facing left should hit, got damage %v", d.Damage)
	}
	if d.Velocity.X != -200 {
		t.Errorf("Knockback should push left, got vx %v", d.Velocity.X)
	}
}

// TestResolveAttackIgnoresSelfAndIdle tests the no-op paths
func TestResolveAttackIgnoresSelfAndIdle(t *testing.T) {
	a := attacker(AttackLight)

	self := ResolveAttack(a, a)
	if self.Damage != 0 {
		t.Error("Attacker should never hit itself")
	}

	idle := attacker(AttackLight)
	idle.IsAttacking = false
	idle.AttackType = AttackNone
	d := ResolveAttack(idle, defenderAt(140, 300))
	if d.Damage != 0 {
		t.Errorf("Idle player should not hit, got damage %v", d.Damage)
	}
}

// TestResolveAttackSkipsOutDefender tests that eliminated players take no hits
func TestResolveAttackSkipsOutDefender(t *testing.T) {
	a := attacker(AttackHeavy)
	d := defenderAt(140, 300)
	d.Stocks = 0

	d = ResolveAttack(a, d)

	if d.Damage != 0 {
		t.Errorf("Out defender should not take damage, got %v", d.Damage)
	}
}

// TestResolveAttacksMultipleDefenders tests that one swing connects with
// every defender in range on the same step
func TestResolveAttacksMultipleDefenders(t *testing.T) {
	a := attacker(AttackLight)
	d1 := defenderAt(140, 300)
	d1.ID = "d1"
	d2 := defenderAt(130, 320)
	d2.ID = "d2"

	out := ResolveAttacks([]Player{a, d1, d2})

	if out[1].Damage != 5 {
		t.Errorf("First defender should take 5, got %v", out[1].Damage)
	}
	if out[2].Damage != 5 {
		t.Errorf("Second defender should take 5, got %v", out[2].Damage)
	}
}

// TestResolveAttacksDeterministicOrder tests that the pass is stable for a
// fixed roster order when several players attack at once
func TestResolveAttacksDeterministicOrder(t *testing.T) {
	a1 := attacker(AttackLight)
	a1.ID = "a1"
	a2 := attacker(AttackLight)
	a2.ID = "a2"
	a2.Position = Vec2{X: 140, Y: 300}
	a2.Direction = -1

	run := func() []Player {
		return ResolveAttacks([]Player{a1, a2})
	}

	first := run()
	second := run()
	for i := range first {
		if first[i].Damage != second[i].Damage || first[i].Velocity != second[i].Velocity {
			t.Errorf("Combat pass diverged for player %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
