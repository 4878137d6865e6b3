// Package scoring converts a day's raw counters into normalized sub-scores and
// a composite affinity score.
//
// The weights, the steepness k and the composite's affine map are a fixed
// contract shared with stored narratives; changing any of them changes every
// historical score.
package scoring

import (
	"math"

	"github.com/aevon-lab/affinity/internal/core/storage"
	"github.com/shopspring/decimal"
)

var (
	weightMessage       = decimal.RequireFromString("1.0")
	weightPokeSent      = decimal.RequireFromString("2.0")
	weightAvgTextLength = decimal.RequireFromString("0.05")

	weightReplyReceived    = decimal.RequireFromString("3.0")
	weightReactionReceived = decimal.RequireFromString("2.0")
	weightPokeReceived     = decimal.RequireFromString("2.0")

	weightRecall = decimal.RequireFromString("5.0")
	weightRepeat = decimal.RequireFromString("3.0")

	weightTopic = decimal.RequireFromString("5.0")
	weightImage = decimal.RequireFromString("2.0")
)

// steepness pins normalize(10)=24, normalize(50)=84, normalize(100)=98.
const steepness = 0.05

// maxSubScore keeps sub-scores in [0, 100).
const maxSubScore = 99

// Raw holds the pre-normalization value of each dimension.
type Raw struct {
	Simp      decimal.Decimal `json:"simp"`
	Vibe      decimal.Decimal `json:"vibe"`
	Ick       decimal.Decimal `json:"ick"`
	Nostalgia decimal.Decimal `json:"nostalgia"`
}

// Result is the output of Score.
type Result struct {
	Simp      int `json:"simp"`
	Vibe      int `json:"vibe"`
	Ick       int `json:"ick"`
	Nostalgia int `json:"nostalgia"`
	Composite int `json:"composite"`
	Raw       Raw `json:"raw"`
}

// RawValues computes the weighted raw value of each dimension.
func RawValues(c storage.Delta) Raw {
	avgLen := decimal.Zero
	if c.MessagesSent > 0 {
		avgLen = decimal.NewFromInt(c.TextLength).Div(decimal.NewFromInt(c.MessagesSent))
	}

	return Raw{
		Simp: decimal.NewFromInt(c.MessagesSent).Mul(weightMessage).
			Add(decimal.NewFromInt(c.PokesSent).Mul(weightPokeSent)).
			Add(avgLen.Mul(weightAvgTextLength)),
		Vibe: decimal.NewFromInt(c.RepliesReceived).Mul(weightReplyReceived).
			Add(decimal.NewFromInt(c.ReactionsReceived).Mul(weightReactionReceived)).
			Add(decimal.NewFromInt(c.PokesReceived).Mul(weightPokeReceived)),
		Ick: decimal.NewFromInt(c.Recalls).Mul(weightRecall).
			Add(decimal.NewFromInt(c.Repeats).Mul(weightRepeat)),
		Nostalgia: decimal.NewFromInt(c.Topics).Mul(weightTopic).
			Add(decimal.NewFromInt(c.ImagesSent).Mul(weightImage)),
	}
}

// Normalize maps a raw value onto [0, 100) with diminishing returns.
func Normalize(x decimal.Decimal) int {
	if !x.IsPositive() {
		return 0
	}

	v := math.Floor(100 * (2/(1+math.Exp(-steepness*x.InexactFloat64())) - 1))
	if v > maxSubScore {
		return maxSubScore
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

// Composite maps the four sub-scores onto [0, 100]. Received engagement and
// continuity are assets; given engagement and negative behavior are
// liabilities. Equal sub-scores give 50.
func Composite(simp, vibe, ick, nostalgia int) int {
	c := ((vibe + nostalgia) - (ick + simp) + 200) / 4
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// Score scores one day's counters. A positive carryOver (yesterday's composite)
// is added to the nostalgia raw value.
func Score(counters storage.Delta, carryOver *int) Result {
	raw := RawValues(counters)
	if carryOver != nil && *carryOver > 0 {
		raw.Nostalgia = raw.Nostalgia.Add(decimal.NewFromInt(int64(*carryOver)))
	}

	r := Result{
		Simp:      Normalize(raw.Simp),
		Vibe:      Normalize(raw.Vibe),
		Ick:       Normalize(raw.Ick),
		Nostalgia: Normalize(raw.Nostalgia),
		Raw:       raw,
	}
	r.Composite = Composite(r.Simp, r.Vibe, r.Ick, r.Nostalgia)
	return r
}
