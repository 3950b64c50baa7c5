package game

// CharacterStats are the balance numbers shown on the select screen. They
// ride along on the roster; the rule engine itself is character-agnostic.
type CharacterStats struct {
	Speed       int `json:"speed"`
	Weight      int `json:"weight"`
	JumpHeight  int `json:"jumpHeight"`
	AttackPower int `json:"attackPower"`
}

// Character is static select-screen configuration.
type Character struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Stats CharacterStats `json:"stats"`
}

// DefaultCharacterID is the sentinel assigned until a player picks, and the
// fallback for unknown ids.
const DefaultCharacterID = "fighter"

var characters = []Character{
	{ID: "fighter", Name: "Fighter", Stats: CharacterStats{Speed: 7, Weight: 5, JumpHeight: 6, AttackPower: 8}},
	{ID: "ninja", Name: "Ninja", Stats: CharacterStats{Speed: 9, Weight: 3, JumpHeight: 8, AttackPower: 6}},
	{ID: "brute", Name: "Brute", Stats: CharacterStats{Speed: 4, Weight: 9, JumpHeight: 4, AttackPower: 10}},
	{ID: "mage", Name: "Mage", Stats: CharacterStats{Speed: 6, Weight: 4, JumpHeight: 5, AttackPower: 9}},
}

// Characters returns the full character catalog.
func Characters() []Character {
	out := make([]Character, len(characters))
	copy(out, characters)
	return out
}

// CharacterByID returns the character for the given id, falling back to the
// default character for unknown ids.
func CharacterByID(id string) Character {
	for _, c := range characters {
		if c.ID == id {
			return c
		}
	}
	return characters[0]
}

// ValidCharacterID reports whether id names a character in the catalog.
func ValidCharacterID(id string) bool {
	for _, c := range characters {
		if c.ID == id {
			return true
		}
	}
	return false
}
