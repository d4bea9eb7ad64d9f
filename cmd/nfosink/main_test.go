package main

import (
	"testing"

	"github.com/Nomadcxx/nfosink/internal/config"
)

func TestApplyFlagOverrides(t *testing.T) {
	resetFlags := func() {
		flagURL, flagToken, flagLibrary, flagType, flagRoot = "", "", "", "", ""
		flagDryRun = false
	}
	resetFlags()
	defer resetFlags()

	cfg := config.DefaultConfig()
	cfg.Server.Token = "from-config"
	cfg.Library.RootPath = "/media/movies"

	// No flags set: config values survive untouched
	applyFlagOverrides(cfg)
	if cfg.Server.Token != "from-config" {
		t.Errorf("Token = %q, want config value", cfg.Server.Token)
	}
	if cfg.Library.Name != "Movies" {
		t.Errorf("Library.Name = %q, want config default", cfg.Library.Name)
	}

	// Flags override config values
	flagURL = "http://plex.local:32400"
	flagToken = "from-flag"
	flagLibrary = "TV Shows"
	flagType = "tv"
	flagRoot = "/media/tv"
	flagDryRun = true
	applyFlagOverrides(cfg)

	if cfg.Server.URL != "http://plex.local:32400" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Server.Token != "from-flag" {
		t.Errorf("Server.Token = %q", cfg.Server.Token)
	}
	if cfg.Library.Name != "TV Shows" {
		t.Errorf("Library.Name = %q", cfg.Library.Name)
	}
	if cfg.Library.Type != "tv" {
		t.Errorf("Library.Type = %q", cfg.Library.Type)
	}
	if cfg.Library.RootPath != "/media/tv" {
		t.Errorf("Library.RootPath = %q", cfg.Library.RootPath)
	}
	if !cfg.Output.DryRun {
		t.Error("Output.DryRun = false, want true")
	}
}
