package theme

import "testing"

func TestForScheme(t *testing.T) {
	tests := []struct {
		scheme string
		want   Palette
	}{
		{"light", Light},
		{"LIGHT", Light},
		{"dark", Dark},
		{"", Dark},
		{"sepia", Dark},
	}
	for _, tt := range tests {
		if got := ForScheme(tt.scheme); got != tt.want {
			t.Errorf("ForScheme(%q) picked the wrong palette", tt.scheme)
		}
	}
}

func TestApply(t *testing.T) {
	t.Cleanup(func() { Apply(Dark) })

	Apply(Light)
	if Text != Light.Text || Bg != Light.Bg {
		t.Error("Apply(Light) did not switch the active colors")
	}
	Apply(Dark)
	if Text != Dark.Text {
		t.Error("Apply(Dark) did not restore the active colors")
	}
}
