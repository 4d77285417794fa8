package windfarm

import "testing"

func TestNewDomainValidation(t *testing.T) {
	tests := []struct {
		name                   string
		xMin, xMax, yMin, yMax float64
		height                 float64
		wantErr                bool
	}{
		{"valid", -1200, 1200, -1200, 1200, 1000, false},
		{"planar", -10, 10, -10, 10, 0, false},
		{"inverted x", 10, -10, 0, 1, 100, true},
		{"inverted y", 0, 1, 10, -10, 100, true},
		{"negative height", 0, 1, 0, 1, -5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDomain(tt.xMin, tt.xMax, tt.yMin, tt.yMax, tt.height)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDomain error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDomainWithin(t *testing.T) {
	d, err := NewDomain(-1200, 1200, -1000, 1000, 800)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		x, y, z float64
		want    bool
	}{
		{"center", 0, 0, 100, true},
		{"on x bound", 1200, 0, 0, true},
		{"past x bound", 1200.5, 0, 0, false},
		{"below x bound", -1201, 0, 0, false},
		{"past y bound", 0, 1001, 0, false},
		{"at height", 0, 0, 800, true},
		{"above height", 0, 0, 800.1, false},
		{"below ground plane", 0, 0, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Within(tt.x, tt.y, tt.z); got != tt.want {
				t.Fatalf("Within(%g, %g, %g) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
			}
		})
	}
}

func TestDomainWithinGround(t *testing.T) {
	base, err := NewDomain(-100, 100, -100, 100, 500)
	if err != nil {
		t.Fatal(err)
	}
	d := base.WithGround(func(x, y float64) float64 { return 50 })

	if d.Within(0, 0, 40) {
		t.Error("point below terrain should be outside")
	}
	if !d.Within(0, 0, 50) {
		t.Error("point on terrain should be inside")
	}
	if !d.Within(0, 0, 200) {
		t.Error("point above terrain should be inside")
	}

	// The original domain is untouched by WithGround.
	if base.HasGround() {
		t.Error("WithGround mutated the receiver")
	}
	if !base.Within(0, 0, 40) {
		t.Error("flat domain should accept the low point")
	}
}

func TestDomainGroundDefault(t *testing.T) {
	d, err := NewDomain(-1, 1, -1, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if g := d.Ground(0.5, 0.5); g != 0 {
		t.Fatalf("Ground on flat domain = %g, want 0", g)
	}
}
