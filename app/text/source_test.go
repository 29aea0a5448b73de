package text

import "testing"

func TestSourceInferrerInfer(t *testing.T) {
	si := NewSourceInferrer("HoopsHype")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"via credit", "The Knicks are shopping a first-round pick, via The Athletic.", "The Athletic"},
		{"via before next sentence", "Brunson wants to stay, via ESPN. More talks are planned.", "ESPN"},
		{"via lowercase keyword", "Brunson is open to an extension VIA ESPN", "ESPN"},
		{"via inside markup", `Brunson is frustrated, via <a href="https://nypost.com/x">New York Post</a>`, "New York Post"},
		{"trailing dash", "Lakers want a third star - Los Angeles Times", "Los Angeles Times"},
		{"trailing em dash", "Lakers want a third star — Sports Illustrated", "Sports Illustrated"},
		{"no attribution", "The Lakers want a third star this summer.", "HoopsHype"},
		{"lowercase via target", "traded via sign-and-trade to Boston", "HoopsHype"},
		{"empty", "", "HoopsHype"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := si.Infer(tt.input)
			if got != tt.want {
				t.Errorf("Infer(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSourceInferrerFromAnchor(t *testing.T) {
	si := NewSourceInferrer("HoopsHype")

	if got := si.FromAnchor("  SNY  "); got != "SNY" {
		t.Errorf("Expected 'SNY', got '%s'", got)
	}
	if got := si.FromAnchor("<span>The Ringer</span>"); got != "The Ringer" {
		t.Errorf("Expected 'The Ringer', got '%s'", got)
	}
	if got := si.FromAnchor(""); got != "HoopsHype" {
		t.Errorf("Expected fallback 'HoopsHype', got '%s'", got)
	}
}
