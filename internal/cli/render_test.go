package cli

import "testing"

func TestDefaultRenderOutput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"demo.mp4", "demo.keycast.mp4"},
		{"clips/take2.mkv", "clips/take2.keycast.mkv"},
		{"noext", "noext.keycast"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := defaultRenderOutput(tt.input)
			if got != tt.want {
				t.Errorf(
					"defaultRenderOutput(%q) = %q, want %q",
					tt.input,
					got,
					tt.want,
				)
			}
		})
	}
}
