package theme

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"dark", Dark, false},
		{"Light", Light, false},
		{" system ", System, false},
		{"", System, false},
		{"solarized", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q): err=%v, wantErr=%v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	if got := System.Resolve(true); got != Dark {
		t.Errorf("System.Resolve(dark bg): got %q", got)
	}
	if got := System.Resolve(false); got != Light {
		t.Errorf("System.Resolve(light bg): got %q", got)
	}
	if got := Light.Resolve(true); got != Light {
		t.Errorf("Light.Resolve: got %q", got)
	}
	if got := Dark.Resolve(false); got != Dark {
		t.Errorf("Dark.Resolve: got %q", got)
	}
}

func TestToggle(t *testing.T) {
	if Dark.Toggle() != Light || Light.Toggle() != Dark {
		t.Error("Toggle should flip between dark and light")
	}
	if Dark.Toggle().Toggle() != Dark {
		t.Error("double toggle should return to dark")
	}
}

func TestGlyph(t *testing.T) {
	if Dark.Glyph() == Light.Glyph() {
		t.Error("dark and light should have different indicators")
	}
}

func TestPalettes(t *testing.T) {
	dark, light := PaletteFor(Dark), PaletteFor(Light)
	if dark.Background == light.Background || dark.Text == light.Text {
		t.Error("dark and light palettes should differ")
	}
	if PaletteFor(System) != dark {
		t.Error("unresolved System should fall back to dark")
	}
}

func TestNewStyles(t *testing.T) {
	s := New(Light)
	if s.Mode != Light {
		t.Errorf("Mode: got %q", s.Mode)
	}
	if !s.Done.GetStrikethrough() {
		t.Error("completed tasks should be struck through")
	}
	if s.Task.GetStrikethrough() {
		t.Error("open tasks should not be struck through")
	}
	if got := s.App.GetBackground(); got != PaletteFor(Light).Background {
		t.Errorf("App background: got %v", got)
	}
}
