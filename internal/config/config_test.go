package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleRun = `
output_dir = "out"

[Transport]
mode = "forward"

[Materials.air]
composition = [{ Symbol = "N", Fraction = 0.78, ByMole = true }, { Symbol = "O", Fraction = 0.22, ByMole = true }]

[Models.s1]
seed = 123456789

[[Models.s1.Sectors]]
material = "air"
density = 1.205e-3

[Models.s1.Transport]
energy_min = 0.01
energy_max = 3.0
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	if err := os.WriteFile(path, []byte(sampleRun), 0o644); err != nil {
		t.Fatal(err)
	}

	run, err := Load(path)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	model, ok := run.Models["s1"]
	if !ok {
		t.Fatal("expected model \"s1\"")
	}
	if model.Transport.Mode != "forward" {
		t.Errorf("Mode = %q, want forward (inherited from global)", model.Transport.Mode)
	}
	if model.Transport.Absorption != "discrete" {
		t.Errorf("Absorption = %q, want discrete (engine default)", model.Transport.Absorption)
	}
	if model.Transport.Rayleigh == nil || !*model.Transport.Rayleigh {
		t.Errorf("Rayleigh default should be true")
	}
	if model.Transport.GridNodes != 128 {
		t.Errorf("GridNodes = %d, want 128", model.Transport.GridNodes)
	}
	if len(model.Sectors) != 1 || model.Sectors[0].Material != "air" {
		t.Errorf("unexpected sectors: %+v", model.Sectors)
	}
}

func TestLoadNoModels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	if err := os.WriteFile(path, []byte("output_dir = \"out\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a run file with no models")
	}
}

func TestTransportValidate(t *testing.T) {
	bad := TransportConfig{EnergyMin: 1, EnergyMax: 0.5, Absorption: "discrete", ComptonModel: "klein_nishina"}
	if err := bad.Validate(); err == nil {
		t.Error("expected energy_min >= energy_max to be rejected")
	}

	backwardNoSource := TransportConfig{Mode: "backward", Absorption: "discrete", ComptonModel: "klein_nishina"}
	if err := backwardNoSource.Validate(); err == nil {
		t.Error("expected backward mode with no source information to be rejected")
	}
}
