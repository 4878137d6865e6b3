package scoring

import (
	"testing"

	"github.com/aevon-lab/affinity/internal/core/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FixedPoints(t *testing.T) {
	tests := []struct {
		name string
		x    string
		want int
	}{
		{name: "zero", x: "0", want: 0},
		{name: "negative", x: "-12.5", want: 0},
		{name: "ten", x: "10", want: 24},
		{name: "twenty", x: "20", want: 46},
		{name: "fifty", x: "50", want: 84},
		{name: "hundred", x: "100", want: 98},
		{name: "huge stays below 100", x: "100000", want: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(decimal.RequireFromString(tt.x)))
		})
	}
}

func TestNormalize_Monotonic(t *testing.T) {
	prev := 0
	for i := 0; i <= 2000; i++ {
		got := Normalize(decimal.NewFromInt(int64(i)).Div(decimal.NewFromInt(4)))
		require.GreaterOrEqual(t, got, prev, "x=%d/4", i)
		require.Less(t, got, 100)
		prev = got
	}
}

func TestComposite_Bounds(t *testing.T) {
	require.Equal(t, 50, Composite(0, 0, 0, 0))
	require.Equal(t, 50, Composite(50, 50, 50, 50))
	require.Equal(t, 99, Composite(0, 99, 0, 99))
	require.Equal(t, 0, Composite(99, 0, 99, 0))

	for s := 0; s < 100; s += 11 {
		for v := 0; v < 100; v += 13 {
			for i := 0; i < 100; i += 17 {
				for n := 0; n < 100; n += 19 {
					c := Composite(s, v, i, n)
					require.GreaterOrEqual(t, c, 0)
					require.LessOrEqual(t, c, 100)
				}
			}
		}
	}
}

func TestScore_AllZeroIsNeutral(t *testing.T) {
	r := Score(storage.Delta{}, nil)
	require.Equal(t, 50, r.Composite)
	require.Zero(t, r.Simp+r.Vibe+r.Ick+r.Nostalgia)
}

func TestRawValues(t *testing.T) {
	raw := RawValues(storage.Delta{
		MessagesSent:      4,
		TextLength:        40,
		PokesSent:         1,
		RepliesReceived:   2,
		ReactionsReceived: 1,
		PokesReceived:     3,
		Recalls:           1,
		Repeats:           2,
		Topics:            2,
		ImagesSent:        3,
	})

	require.True(t, raw.Simp.Equal(decimal.RequireFromString("6.5")), raw.Simp.String())
	require.True(t, raw.Vibe.Equal(decimal.NewFromInt(14)), raw.Vibe.String())
	require.True(t, raw.Ick.Equal(decimal.NewFromInt(11)), raw.Ick.String())
	require.True(t, raw.Nostalgia.Equal(decimal.NewFromInt(16)), raw.Nostalgia.String())
}

func TestScore_CarryOver(t *testing.T) {
	counters := storage.Delta{Topics: 1}

	without := Score(counters, nil)
	require.Equal(t, Normalize(decimal.NewFromInt(5)), without.Nostalgia)

	carry := 60
	with := Score(counters, &carry)
	require.True(t, with.Raw.Nostalgia.Equal(decimal.NewFromInt(65)))
	require.Greater(t, with.Nostalgia, without.Nostalgia)
	require.GreaterOrEqual(t, with.Composite, without.Composite)

	negative := -5
	require.Equal(t, without, Score(counters, &negative))
}
