package game

// Advance runs one physics step for a single player and returns the updated
// player. It is a pure function: given identical arguments it produces
// bit-identical output, which is what makes client-side prediction and
// reconciliation meaningful. The server calls it with wall-clock deltas, the
// client with frame deltas, and reconciliation replay with NominalDT.
//
// The rule order is fixed: gravity, horizontal control, jump, attack
// trigger/expiry, integration, platform collision, boundary clamp, fall-off.
func Advance(p Player, dt float64, in Input, platforms []Platform, bounds Bounds) Player {
	// Eliminated players are frozen until the room resets.
	if p.Out() {
		return p
	}

	prev := p.Position

	// Gravity, clamped to terminal velocity.
	p.Velocity.Y += Gravity * dt
	if p.Velocity.Y > TerminalVelocity {
		p.Velocity.Y = TerminalVelocity
	}

	// Horizontal control. Opposing or absent inputs decay velocity
	// geometrically; friction never flips the sign on its own.
	switch {
	case in.Left() && !in.Right():
		p.Velocity.X = -RunSpeed
		p.Direction = -1
	case in.Right() && !in.Left():
		p.Velocity.X = RunSpeed
		p.Direction = 1
	default:
		p.Velocity.X *= Friction
	}

	// Jump. IsJumping clears only on landing, so a held jump key cannot
	// re-trigger mid-air and there is no double jump.
	if in.Jump() && !p.IsJumping {
		p.Velocity.Y = -JumpImpulse
		p.IsJumping = true
	}

	// Attack trigger. A new attack cannot start while one is active; light
	// takes precedence when both keys are held.
	if !p.IsAttacking {
		switch {
		case in.Light():
			p.IsAttacking = true
			p.AttackType = AttackLight
			p.AttackTimeLeft = LightAttackDuration
		case in.Heavy():
			p.IsAttacking = true
			p.AttackType = AttackHeavy
			p.AttackTimeLeft = HeavyAttackDuration
		}
	}

	// Attack auto-release, tracked as explicit per-player state instead of
	// a scheduled callback.
	if p.IsAttacking {
		p.AttackTimeLeft -= dt
		if p.AttackTimeLeft <= 0 {
			p.IsAttacking = false
			p.AttackType = AttackNone
			p.AttackTimeLeft = 0
		}
	}

	// Explicit Euler integration, no substeps.
	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt

	// Platform collision, evaluated only while falling. Landing requires
	// the feet to cross the platform top during this step while the
	// horizontal extents overlap. Platforms are checked in stage
	// declaration order and the first match wins.
	if p.Velocity.Y > 0 {
		for _, pl := range platforms {
			wasAbove := prev.Y+HalfHeight <= pl.Y
			atLevel := p.Position.Y+HalfHeight >= pl.Y
			overlaps := p.Position.X+HalfWidth > pl.X &&
				p.Position.X-HalfWidth < pl.X+pl.Width
			if wasAbove && atLevel && overlaps {
				p.Position.Y = pl.Y - HalfHeight
				p.Velocity.Y = 0
				p.IsJumping = false
				break
			}
		}
	}

	// Boundary clamps. Left, right and top are solid; the bottom is open.
	if p.Position.X < bounds.Left+HalfWidth {
		p.Position.X = bounds.Left + HalfWidth
		p.Velocity.X = 0
	} else if p.Position.X > bounds.Right-HalfWidth {
		p.Position.X = bounds.Right - HalfWidth
		p.Velocity.X = 0
	}
	if p.Position.Y < bounds.Top+HalfHeight {
		p.Position.Y = bounds.Top + HalfHeight
		p.Velocity.Y = 0
	}

	// Fall-off. Losing the last stock leaves the player out at the fall
	// position; otherwise respawn at stage center-top with a clean slate.
	if p.Position.Y > bounds.Bottom {
		p.Stocks--
		if p.Stocks > 0 {
			p = p.respawnAt(spawnPoint(bounds))
		} else {
			p.Velocity = Vec2{}
			p.IsAttacking = false
			p.AttackType = AttackNone
			p.AttackTimeLeft = 0
		}
	}

	return p
}

func spawnPoint(b Bounds) Vec2 {
	return Vec2{X: (b.Left + b.Right) / 2, Y: b.Top + respawnDropY}
}
