package core

import (
	"errors"
	"strings"
	"testing"
)

type fakeSim struct{ size Size }

func (f *fakeSim) Name() string { return "fake" }
func (f *fakeSim) Size() Size { return f.size }
func (f *fakeSim) Reset(int64) {}
func (f *fakeSim) Step() {}
func (f *fakeSim) Cells() []uint8 { return make([]uint8, f.size.W*f.size.H) }

func TestRegistry(t *testing.T) {
	errBad := errors.New("bad config")
	Register("zz-fake", func(cfg map[string]string) (Sim, error) {
		if cfg["fail"] != "" {
			return nil, errBad
		}
		return &fakeSim{size: Size{W: 2, H: 3}}, nil
	})
	Register("", func(map[string]string) (Sim, error) { return nil, nil })
	Register("zz-nil", nil)

	names := Names()
	if names[len(names)-1] != "zz-fake" {
		t.Fatalf("names=%v, expected zz-fake last", names)
	}
	for _, n := range names {
		if n == "" || n == "zz-nil" {
			t.Fatalf("invalid registration %q accepted", n)
		}
	}

	sim, err := New("zz-fake", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := sim.Size(); got != (Size{W: 2, H: 3}) {
		t.Fatalf("size=%v", got)
	}
	if _, err := New("zz-fake", map[string]string{"fail": "1"}); !errors.Is(err, errBad) {
		t.Fatalf("expected factory error, got %v", err)
	}
	if _, err := New("missing", nil); err == nil || !strings.Contains(err.Error(), "zz-fake") {
		t.Fatalf("expected unknown-sim error listing names, got %v", err)
	}
}
