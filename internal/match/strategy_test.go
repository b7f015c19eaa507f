package match

import (
	"testing"

	"github.com/gyeh/loclink/internal/input"
	"github.com/gyeh/loclink/internal/model"
)

func TestDetectStrategy(t *testing.T) {
	cases := []struct {
		name  string
		stats input.ColumnStats
		want  model.Strategy
	}{
		{
			name:  "direct id above materiality",
			stats: input.ColumnStats{Total: 100, LocationIDShare: 0.25, AddressLine1Share: 0.9},
			want:  model.StrategyDirectID,
		},
		{
			name:  "direct id exactly at materiality is not enough",
			stats: input.ColumnStats{Total: 100, LocationIDShare: 0.2, AddressLine1Share: 0.9, CityShare: 0.9, StateShare: 0.9},
			want:  model.StrategyFieldFuzzy,
		},
		{
			name:  "state only",
			stats: input.ColumnStats{Total: 100, StateShare: 0.9},
			want:  model.StrategyStateOnly,
		},
		{
			name:  "concat when only address line 1 is populated",
			stats: input.ColumnStats{Total: 100, AddressLine1Share: 0.8},
			want:  model.StrategyConcatAddress,
		},
		{
			name:  "concat tolerates address line 2",
			stats: input.ColumnStats{Total: 100, AddressLine1Share: 0.8, AddressLine2Share: 0.3},
			want:  model.StrategyConcatAddress,
		},
		{
			name:  "full address defaults to field fuzzy",
			stats: input.ColumnStats{Total: 100, AddressLine1Share: 0.9, CityShare: 0.9, StateShare: 0.9, ZipShare: 0.9},
			want:  model.StrategyFieldFuzzy,
		},
		{
			name:  "direct id wins over state only",
			stats: input.ColumnStats{Total: 100, LocationIDShare: 0.5, StateShare: 0.9},
			want:  model.StrategyDirectID,
		},
		{
			name:  "state plus city is not state only",
			stats: input.ColumnStats{Total: 100, StateShare: 0.9, CityShare: 0.2},
			want:  model.StrategyFieldFuzzy,
		},
		{
			name:  "empty dataset",
			stats: input.ColumnStats{},
			want:  model.StrategyFieldFuzzy,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectStrategy(tc.stats, DefaultDirectIDShare); got != tc.want {
				t.Errorf("DetectStrategy = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestForStrategy(t *testing.T) {
	for _, s := range []model.Strategy{
		model.StrategyDirectID,
		model.StrategyStateOnly,
		model.StrategyConcatAddress,
		model.StrategyFieldFuzzy,
	} {
		m := ForStrategy(s, DefaultThresholds())
		if m.Name() != string(s) {
			t.Errorf("ForStrategy(%s).Name() = %s", s, m.Name())
		}
	}
}
