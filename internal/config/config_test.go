package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv(EnvQuality, "")
	t.Setenv(EnvWorkers, "")

	opts := DefaultOptions()
	opts.InputDir = "photos"

	cfg, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Quality != DefaultQuality {
		t.Errorf("Quality = %d, want %d", cfg.Quality, DefaultQuality)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", cfg.Workers, DefaultWorkers)
	}
	if cfg.Resize != nil {
		t.Errorf("Resize = %v, want nil", cfg.Resize)
	}
	if !filepath.IsAbs(cfg.InputDir) {
		t.Errorf("InputDir %q is not absolute", cfg.InputDir)
	}
	if cfg.OutputDir != "" {
		t.Errorf("OutputDir = %q, want empty", cfg.OutputDir)
	}
}

func TestDefaultOptions_Env(t *testing.T) {
	t.Setenv(EnvQuality, "75")
	t.Setenv(EnvWorkers, "not-a-number")

	opts := DefaultOptions()
	if opts.Quality != 75 {
		t.Errorf("Quality = %d, want 75", opts.Quality)
	}
	if opts.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", opts.Workers, DefaultWorkers)
	}
}

func TestNew_Invalid(t *testing.T) {
	base := Options{InputDir: "in", Quality: 90, Workers: 4}

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"missing input", func(o *Options) { o.InputDir = "  " }},
		{"quality zero", func(o *Options) { o.Quality = 0 }},
		{"quality too high", func(o *Options) { o.Quality = 101 }},
		{"workers zero", func(o *Options) { o.Workers = 0 }},
		{"bad resize", func(o *Options) { o.Resize = "big" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			tt.mutate(&opts)
			_, err := New(opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsSetupError(err) {
				t.Errorf("error %v is not a SetupError", err)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestNew_CustomOutputAndResize(t *testing.T) {
	cfg, err := New(Options{InputDir: "in", OutputDir: "out", Quality: 50, Workers: 2, Resize: "1920x1080"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !filepath.IsAbs(cfg.OutputDir) || filepath.Base(cfg.OutputDir) != "out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Resize == nil || *cfg.Resize != (Size{Width: 1920, Height: 1080}) {
		t.Errorf("Resize = %v, want 1920x1080", cfg.Resize)
	}
}

func TestParseResize(t *testing.T) {
	tests := []struct {
		raw     string
		want    Size
		wantErr bool
	}{
		{"100x100", Size{100, 100}, false},
		{"1920X1080", Size{1920, 1080}, false},
		{" 640 x 480 ", Size{640, 480}, false},
		{"0x100", Size{}, true},
		{"100x-5", Size{}, true},
		{"100", Size{}, true},
		{"axb", Size{}, true},
		{"", Size{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseResize(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseResize: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
