package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/streakarena/internal/data"
	"github.com/udisondev/streakarena/internal/rng"
	"github.com/udisondev/streakarena/internal/testutil"
)

func TestStatMultiplierBP(t *testing.T) {
	tests := []struct {
		streak int64
		want   int64
	}{
		{0, 10_000},
		{1, 10_300},
		{10, 13_000},
		{11, 13_200},
		{25, 16_000},
		{50, 18_500},
		{100, 21_000},
		{1_000, 21_000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatMultiplierBP(tt.streak), "streak %d", tt.streak)
	}
}

func TestStatMultiplierBP_Diminishing(t *testing.T) {
	// Each tier adds less per streak point than the previous one.
	step := func(s int64) int64 { return StatMultiplierBP(s) - StatMultiplierBP(s-1) }
	assert.Greater(t, step(5), step(20))
	assert.Greater(t, step(20), step(40))
	assert.Greater(t, step(40), step(80))
	assert.Zero(t, step(150))
}

func TestRankLabel(t *testing.T) {
	tests := []struct {
		streak int64
		want   string
	}{
		{0, ""},
		{9, ""},
		{10, "Veteran"},
		{24, "Veteran"},
		{25, "Elite"},
		{50, "Legendary"},
		{99, "Legendary"},
		{100, "Mythic"},
		{5000, "Mythic"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RankLabel(tt.streak), "streak %d", tt.streak)
	}
}

func TestWeights(t *testing.T) {
	w0 := Weights(0)
	assert.Equal(t, [bucketCount]float64{50, 30, 15, 5}, w0)

	w50 := Weights(50)
	assert.InDelta(t, 40, w50[BucketSameLevel], 1e-9)
	assert.InDelta(t, 10, w50[BucketBelowNear], 1e-9)
	assert.InDelta(t, 30, w50[BucketSlightlyAbove], 1e-9)
	assert.InDelta(t, 20, w50[BucketMuchAbove], 1e-9)

	// Bounded: streak beyond the shift cap changes nothing.
	assert.Equal(t, w50, Weights(500))

	sum := func(w [bucketCount]float64) float64 {
		var s float64
		for _, v := range w {
			s += v
		}
		return s
	}
	assert.InDelta(t, sum(w0), sum(Weights(17)), 1e-9)
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		monster int32
		want    Bucket
		ok      bool
	}{
		{10, BucketSameLevel, true},
		{8, BucketSameLevel, true},
		{12, BucketSameLevel, true},
		{7, BucketBelowNear, true},
		{2, BucketBelowNear, true},
		{1, 0, false},
		{13, BucketSlightlyAbove, true},
		{18, BucketSlightlyAbove, true},
		{19, BucketMuchAbove, true},
		{30, BucketMuchAbove, true},
		{31, 0, false},
	}
	for _, tt := range tests {
		got, ok := bucketOf(tt.monster, 10)
		assert.Equal(t, tt.ok, ok, "monster level %d", tt.monster)
		if tt.ok {
			assert.Equal(t, tt.want, got, "monster level %d", tt.monster)
		}
	}
}

func TestGenerate_NeverBelowCatalogBase(t *testing.T) {
	catalog := data.DefaultCatalog()
	g := NewGenerator(catalog)
	src := rng.New(99)

	for _, level := range []int32{1, 5, 10, 25, 50, 80, 120, 200} {
		for _, streak := range []int64{0, 1, 9, 10, 26, 51, 100, 250} {
			m, err := g.Generate(src, level, level, streak)
			require.NoError(t, err)

			base, err := catalog.Get(m.TemplateID)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, m.HP, base.HP)
			assert.GreaterOrEqual(t, m.Attack, base.Attack)
			assert.GreaterOrEqual(t, m.Defense, base.Defense)
			assert.GreaterOrEqual(t, m.Exp, base.Exp)
			assert.GreaterOrEqual(t, m.Coins, base.Coins)
		}
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	g := NewGenerator(data.DefaultCatalog())
	a, err := g.Generate(rng.New(7), 20, 20, 12)
	require.NoError(t, err)
	b, err := g.Generate(rng.New(7), 20, 20, 12)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_ScriptedBucket(t *testing.T) {
	catalog, err := data.NewCatalog([]data.MonsterDef{
		{ID: 1, Name: "Same", Level: 10, HP: 100, Attack: 10, Defense: 10, Exp: 10, Coins: 10},
		{ID: 2, Name: "Below", Level: 5, HP: 100, Attack: 10, Defense: 10, Exp: 10, Coins: 10},
		{ID: 3, Name: "Above", Level: 15, HP: 100, Attack: 10, Defense: 10, Exp: 10, Coins: 10},
		{ID: 4, Name: "FarAbove", Level: 25, HP: 100, Attack: 10, Defense: 10, Exp: 10, Coins: 10},
	})
	require.NoError(t, err)
	g := NewGenerator(catalog)

	// streak 0 weights {50,30,15,5}, total 100.
	tests := []struct {
		roll float64
		want int32
	}{
		{0.00, 1},
		{0.49, 1},
		{0.50, 2},
		{0.79, 2},
		{0.80, 3},
		{0.96, 4},
		{0.999, 4},
	}
	for _, tt := range tests {
		m, err := g.Generate(&testutil.SeqSource{Floats: []float64{tt.roll}}, 10, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, tt.want, m.TemplateID, "roll %v", tt.roll)
	}
}

func TestGenerate_EmptyBucketsSkipped(t *testing.T) {
	catalog, err := data.NewCatalog([]data.MonsterDef{
		{ID: 3, Name: "Above", Level: 15, HP: 100, Attack: 10, Defense: 10},
	})
	require.NoError(t, err)
	g := NewGenerator(catalog)

	for _, roll := range []float64{0, 0.5, 0.99} {
		m, err := g.Generate(&testutil.SeqSource{Floats: []float64{roll}}, 10, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 3, m.TemplateID)
	}
}

func TestGenerate_FallsBackToNearest(t *testing.T) {
	catalog, err := data.NewCatalog([]data.MonsterDef{
		{ID: 1, Name: "Ancient", Level: 90, HP: 100, Attack: 10, Defense: 10},
	})
	require.NoError(t, err)

	m, err := NewGenerator(catalog).Generate(rng.New(1), 1, 1, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, m.TemplateID)
}

func TestGenerate_EmptyCatalog(t *testing.T) {
	catalog, err := data.NewCatalog(nil)
	require.NoError(t, err)

	_, err = NewGenerator(catalog).Generate(rng.New(1), 10, 10, 0)
	assert.ErrorIs(t, err, data.ErrMonsterNotFound)
}

func TestScale(t *testing.T) {
	def := &data.MonsterDef{ID: 1, Name: "Wolf", Level: 10, HP: 100, Attack: 20, Defense: 10, Speed: 7, Exp: 50, Coins: 20}

	m := Scale(def, 10, 10)
	assert.Equal(t, "Veteran Wolf", m.Name)
	assert.Equal(t, "Veteran", m.Rank)
	assert.EqualValues(t, 130, m.HP)
	assert.EqualValues(t, 26, m.Attack)
	assert.EqualValues(t, 13, m.Defense)
	assert.EqualValues(t, 7, m.Speed, "speed is not scaled")
	assert.EqualValues(t, 65, m.Exp)
	assert.EqualValues(t, 26, m.Coins)
}

func TestScale_HighLevelHPBonus(t *testing.T) {
	def := &data.MonsterDef{ID: 1, Name: "Lich", Level: 60, HP: 1000, Attack: 100, Defense: 100}

	low := Scale(def, HighLevelThreshold-1, 4)
	high := Scale(def, HighLevelThreshold, 4)
	assert.Equal(t, low.HP+4*HighLevelHPPerStreak, high.HP)

	capped := Scale(def, 80, 400)
	uncappedAt100 := Scale(def, 80, 100)
	assert.Equal(t, uncappedAt100.HP, capped.HP)
}

func TestGenerate_HighLevelBonusFollowsPlayerLevel(t *testing.T) {
	catalog, err := data.NewCatalog([]data.MonsterDef{
		{ID: 1, Name: "Lich", Level: 60, HP: 1000, Attack: 100, Defense: 100, Exp: 10, Coins: 10},
	})
	require.NoError(t, err)
	g := NewGenerator(catalog)

	lowPlayer, err := g.Generate(rng.New(1), 60, 5, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1300, lowPlayer.HP, "enemy level alone must not add the bonus")

	highPlayer, err := g.Generate(rng.New(1), 60, HighLevelThreshold, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1300+10*HighLevelHPPerStreak, highPlayer.HP)

	// a high-level player picking a low enemy level still gets the bonus
	lowEnemy, err := g.Generate(rng.New(1), 5, 70, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1300+10*HighLevelHPPerStreak, lowEnemy.HP)
}
