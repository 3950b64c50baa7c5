package game

// Logical control names. Clients map raw key codes to these before anything
// touches the wire, so the simulation never sees platform key codes.
const (
	KeyUp    = "w"
	KeyLeft  = "a"
	KeyDown  = "s"
	KeyRight = "d"
	KeyJump  = "space"
	KeyLight = "j"
	KeyHeavy = "k"
)

// Input is one semantic input sample: logical control name -> pressed.
// A nil Input reads as nothing pressed.
type Input map[string]bool

// Clone returns an owned copy. Inputs cross goroutine boundaries (read loop
// to simulation, sampler to prediction) so shared maps are never handed out.
func (in Input) Clone() Input {
	if in == nil {
		return nil
	}
	out := make(Input, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (in Input) Left() bool  { return in[KeyLeft] }
func (in Input) Right() bool { return in[KeyRight] }
func (in Input) Jump() bool  { return in[KeyJump] }
func (in Input) Light() bool { return in[KeyLight] }
func (in Input) Heavy() bool { return in[KeyHeavy] }
