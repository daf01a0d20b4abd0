package water

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goldenFor(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestLoadScenarioFunnel(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "funnel.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "funnel", s.Name)

	cfg, err := s.Config()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Width)
	assert.Equal(t, 5, cfg.Height)
	assert.Equal(t, 5, cfg.Params.Margin)
	assert.Zero(t, cfg.Params.PoolCount, "scenarios never seed random pools")

	e, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, 64, e.TotalWater())

	var buf bytes.Buffer
	require.NoError(t, e.WriteText(&buf))
	goldenFor(t).Assert(t, "funnel_initial", buf.Bytes())
}

func TestFunnelConservesWater(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "funnel.yaml"))
	require.NoError(t, err)
	e, err := s.Build()
	require.NoError(t, err)

	settle(t, e, 5000)
	assert.Equal(t, 64, e.TotalWater())
}

func TestShaftFillsBottomRow(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "shaft.yaml"))
	require.NoError(t, err)
	e, err := s.Build()
	require.NoError(t, err)

	settle(t, e, 5000)
	goldenFor(t).Assert(t, "shaft_settled", []byte(e.String()))
}

func TestColumnSettledGolden(t *testing.T) {
	e := engineFromRows(t, ModeRealtime, "4", ".")
	settle(t, e, 100)
	goldenFor(t).Assert(t, "column_settled", []byte(e.String()))
}

func TestParseScenarioErrors(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"no rows":       "name: x\n",
		"unknown field": "name: x\nrows: [\".\"]\nviscosity: 3\n",
		"ragged":        "name: x\nrows: [\"..\", \".\"]\n",
		"bad rune":      "name: x\nrows: [\".?\"]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := ParseScenario([]byte(doc))
			if err == nil {
				_, err = s.Build()
			}
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestScenarioLevelAboveCapacity(t *testing.T) {
	s, err := ParseScenario([]byte("name: x\nmax_water_level: 4\nrows: [\"5\"]\n"))
	require.NoError(t, err)
	_, err = s.Build()
	assert.ErrorIs(t, err, ErrInvalidWaterLevel)
}

func TestScenarioBadMode(t *testing.T) {
	s, err := ParseScenario([]byte("name: x\nmode: stepp\nrows: [\".\"]\n"))
	require.NoError(t, err)
	_, err = s.Config()
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestParseRowsOrientation(t *testing.T) {
	g, cells, err := ParseRows([]string{"#A", "1."})
	require.NoError(t, err)
	assert.Equal(t, 2, g.W)
	assert.Equal(t, 2, g.H)
	assert.Equal(t, Cell{WaterLevel: 1, Flow: 1}, cells[g.Index(0, 0)])
	assert.Equal(t, Cell{}, cells[g.Index(1, 0)])
	assert.Equal(t, Cell{Blocking: true}, cells[g.Index(0, 1)])
	assert.Equal(t, Cell{WaterLevel: 10, Flow: 10}, cells[g.Index(1, 1)])
}

func TestWriteTextOverflowRune(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.MaxWaterLevel = 40
	e, err := NewEngineFromRows(cfg, []string{"z."})
	require.NoError(t, err)
	require.NoError(t, e.EditCell(1, SetWaterLevel(40)))
	assert.Equal(t, "z+\n", e.String())
}
