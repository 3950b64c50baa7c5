package game

import "math"

// ResolveAttack applies one attacker-vs-defender hit check and returns the
// updated defender. It is a no-op unless the attacker is mid-attack, is a
// different player, the defender is within the attack's circular range, and
// the defender lies on the side the attacker faces.
//
// Knockback scales with the damage the defender carried BEFORE this hit, so
// the launch strength lags the damage counter by one hit. The defender is
// forced airborne regardless of prior grounded state.
func ResolveAttack(attacker, defender Player) Player {
	if !attacker.IsAttacking || attacker.ID == defender.ID {
		return defender
	}
	if defender.Out() {
		return defender
	}

	attackRange := LightAttackRange
	baseDamage := LightAttackDamage
	baseForce := LightKnockbackForce
	if attacker.AttackType == AttackHeavy {
		attackRange = HeavyAttackRange
		baseDamage = HeavyAttackDamage
		baseForce = HeavyKnockbackForce
	}

	dx := defender.Position.X - attacker.Position.X
	dy := defender.Position.Y - attacker.Position.Y
	distance := math.Sqrt(dx*dx + dy*dy)

	facing := (attacker.Direction == 1 && dx > 0) ||
		(attacker.Direction == -1 && dx < 0)
	if distance >= attackRange || !facing {
		return defender
	}

	multiplier := 1 + defender.Damage/100
	defender.Damage += baseDamage

	defender.Velocity.X = float64(attacker.Direction) * baseForce * multiplier
	defender.Velocity.Y = -KnockbackLift * multiplier
	defender.IsJumping = true

	return defender
}

// ResolveAttacks runs the all-pairs combat pass over a roster: every
// attacking player is checked against every other player independently, so
// one swing can connect with several defenders in the same step. Pairs are
// evaluated in slice order with results visible to later pairs, which keeps
// the pass deterministic for a given roster order.
func ResolveAttacks(players []Player) []Player {
	for i := range players {
		if !players[i].IsAttacking {
			continue
		}
		for j := range players {
			if i == j {
				continue
			}
			players[j] = ResolveAttack(players[i], players[j])
		}
	}
	return players
}
