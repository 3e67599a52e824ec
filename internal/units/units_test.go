// ABOUTME: Tests for weight and height unit conversions.
// ABOUTME: Validates round-trip tolerance and guarded bad inputs.
package units

import (
	"math"
	"testing"
)

func TestKgLbRoundTrip(t *testing.T) {
	for _, kg := range []float64{50, 70, 82.5, 100, 120.3} {
		lb := KgToLb(kg)
		back := LbToKg(lb)
		if math.Abs(back-kg) > 0.1 {
			t.Errorf("round trip %v kg -> %v lb -> %v kg, drift > 0.1", kg, lb, back)
		}
	}
}

func TestKgToLbRepresentative(t *testing.T) {
	lb := KgToLb(70)
	if math.Abs(lb-154.3) > 0.05 {
		t.Errorf("KgToLb(70) = %v, want ~154.3", lb)
	}
}

func TestConversionGuards(t *testing.T) {
	if KgToLb(-5) != 0 || LbToKg(-5) != 0 {
		t.Error("negative weight must convert to 0")
	}
	if KgToLb(math.NaN()) != 0 || LbToKg(math.NaN()) != 0 {
		t.Error("NaN weight must convert to 0")
	}
	if ft, in := CmToFtIn(-10); ft != 0 || in != 0 {
		t.Error("negative height must convert to 0'0\"")
	}
	if ft, in := CmToFtIn(math.NaN()); ft != 0 || in != 0 {
		t.Error("NaN height must convert to 0'0\"")
	}
	if FtInToCm(-1, 5) != 0 {
		t.Error("negative feet must convert to 0")
	}
}

func TestCmToFtIn(t *testing.T) {
	tests := []struct {
		cm     float64
		wantFt int
		wantIn int
	}{
		{175, 5, 9},
		{183, 6, 0},
		{152, 5, 0},
		{30.48, 1, 0},
	}

	for _, tt := range tests {
		ft, in := CmToFtIn(tt.cm)
		if ft != tt.wantFt || in != tt.wantIn {
			t.Errorf("CmToFtIn(%v) = %d'%d\", want %d'%d\"", tt.cm, ft, in, tt.wantFt, tt.wantIn)
		}
	}
}

func TestCmToFtInCarriesTwelfthInch(t *testing.T) {
	// 182.5 cm is 71.85 in: 5 ft + 11.85 in rounds to 12, carrying to 6 ft.
	ft, in := CmToFtIn(182.5)
	if ft != 6 || in != 0 {
		t.Errorf("CmToFtIn(182.5) = %d'%d\", want 6'0\"", ft, in)
	}
}

func TestFtInToCm(t *testing.T) {
	if got := FtInToCm(5, 9); got != 175 {
		t.Errorf("FtInToCm(5, 9) = %v, want 175", got)
	}
	if got := FtInToCm(6, 0); got != 183 {
		t.Errorf("FtInToCm(6, 0) = %v, want 183", got)
	}
}

func TestHeightRoundTrip(t *testing.T) {
	for cm := 120.0; cm <= 210; cm += 7 {
		ft, in := CmToFtIn(cm)
		back := FtInToCm(ft, in)
		if math.Abs(back-cm) > CmPerIn/2+0.51 {
			t.Errorf("round trip %v cm -> %d'%d\" -> %v cm drifts too far", cm, ft, in, back)
		}
	}
}
