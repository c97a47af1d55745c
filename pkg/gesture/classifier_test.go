package gesture

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		dx   float64
		dy   float64
		want Direction
	}{
		{"zero delta", 0, 0, DirectionNone},
		{"right above threshold", 51, 0, DirectionRight},
		{"right at threshold is none", 50, 0, DirectionNone},
		{"left above threshold", -51, 0, DirectionLeft},
		{"left at threshold is none", -50, 0, DirectionNone},
		{"up above threshold", 0, -51, DirectionUp},
		{"down above threshold", 0, 51, DirectionDown},
		{"down at threshold is none", 0, 50, DirectionNone},
		{"horizontal dominant", 120, 40, DirectionRight},
		{"vertical dominant", 40, -120, DirectionUp},
		{"diagonal tie resolves vertical", 80, 80, DirectionDown},
		{"negative diagonal tie resolves vertical", -80, -80, DirectionUp},
		{"small jitter", 12, -9, DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.dx, tt.dy, DefaultThreshold)
			if got != tt.want {
				t.Errorf("Classify(%v, %v) = %q, want %q", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestClassifySubThresholdIsNone(t *testing.T) {
	for dx := -50.0; dx <= 50.0; dx += 10 {
		for dy := -50.0; dy <= 50.0; dy += 10 {
			if got := Classify(dx, dy, DefaultThreshold); got != DirectionNone {
				t.Fatalf("Classify(%v, %v) = %q, want none", dx, dy, got)
			}
		}
	}
}

func TestClassifyPoints(t *testing.T) {
	if got := ClassifyPoints(200, 300, 300, 300); got != DirectionRight {
		t.Errorf("ClassifyPoints right swipe = %q", got)
	}
	if got := ClassifyPoints(200, 300, 200, 180); got != DirectionUp {
		t.Errorf("ClassifyPoints up swipe = %q", got)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in     string
		want   Direction
		wantOK bool
	}{
		{"up", DirectionUp, true},
		{"DOWN", DirectionDown, true},
		{" Left ", DirectionLeft, true},
		{"Right", DirectionRight, true},
		{"", DirectionNone, false},
		{"diagonal", DirectionNone, false},
	}

	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseDirection(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
