package config

import "testing"

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.LastTempo != 120 || cfg.UI.TimeGrid != 0.25 {
		t.Fatalf("defaults = %+v", cfg.UI)
	}
	if cfg.Resolution != 0.01 || cfg.SynthOutput.BendRange != 2 {
		t.Fatalf("defaults = res %v bend %v", cfg.Resolution, cfg.SynthOutput.BendRange)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.SynthOutput.PortName = "FluidSynth"
	cfg.UI.LastDocument = "sketch"
	cfg.UI.LastTempo = 90
	cfg.Debug = true
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	back, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if back.SynthOutput.PortName != "FluidSynth" || back.UI.LastDocument != "sketch" {
		t.Fatalf("round trip = %+v", back)
	}
	if back.UI.LastTempo != 90 || !back.Debug {
		t.Fatalf("round trip = %+v", back)
	}
}

func TestLoadRepairsZeroedFields(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Resolution = 0
	cfg.SynthOutput.BendRange = 0
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	back, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if back.Resolution != 0.01 || back.SynthOutput.BendRange != 2 {
		t.Fatalf("zeroed fields not repaired: res %v bend %v", back.Resolution, back.SynthOutput.BendRange)
	}
}
