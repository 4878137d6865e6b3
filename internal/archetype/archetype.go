// Package archetype classifies a member from their normalized sub-scores.
package archetype

// Archetype is a behavioral label.
type Archetype string

const (
	Himbo     Archetype = "HIMBO"
	TheSimp   Archetype = "THE_SIMP"
	ThePlayer Archetype = "THE_PLAYER"
	Idol      Archetype = "IDOL"
	NPC       Archetype = "NPC"
	Normal    Archetype = "NORMAL"
)

var labels = map[Archetype]string{
	Himbo:     "笨蛋美人 (Himbo)",
	TheSimp:   "沸羊羊 (The Simp)",
	ThePlayer: "海王 (The Player)",
	Idol:      "高冷男神/女神 (The Idol)",
	NPC:       "路人甲 (NPC)",
	Normal:    "普通群友 (Normal)",
}

// Label returns the display label.
func (a Archetype) Label() string {
	if l, ok := labels[a]; ok {
		return l
	}
	return string(a)
}

type rule struct {
	archetype Archetype
	match     func(simp, vibe, ick int) bool
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{Himbo, func(s, v, i int) bool { return i > 60 && v > 50 }},
	{TheSimp, func(s, v, i int) bool { return s > 70 && v < 30 }},
	{ThePlayer, func(s, v, i int) bool { return s < 40 && v > 70 }},
	{Idol, func(s, v, i int) bool { return s < 15 && v > 40 }},
	{NPC, func(s, v, i int) bool { return s < 20 && v < 20 }},
}

// Classify returns the first archetype whose rule matches, or Normal.
func Classify(simp, vibe, ick int) Archetype {
	for _, r := range rules {
		if r.match(simp, vibe, ick) {
			return r.archetype
		}
	}
	return Normal
}
