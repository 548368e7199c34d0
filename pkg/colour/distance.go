package colour

import "math"

// pow25To7 is 25^7, used by the CIEDE2000 chroma compensation terms.
const pow25To7 = 6103515625.0

// DistanceCIE76 returns the Euclidean distance between two Lab colours.
// It is fast but over-weights differences in saturated colours.
func DistanceCIE76(x, y Lab) float64 {
	dL := x.L - y.L
	da := x.A - y.A
	db := x.B - y.B
	return math.Sqrt(dL*dL + da*da + db*db)
}

// DistanceCIEDE2000 returns the CIEDE2000 colour difference between two Lab colours
// with unit parametric weights (kL = kC = kH = 1).
//
// The implementation follows Sharma, Wu and Dalal, "The CIEDE2000 Color-Difference
// Formula: Implementation Notes, Supplementary Test Data, and Mathematical Observations"
// (2005), including the SL, SC, SH weighting functions and the RT rotation term.
func DistanceCIEDE2000(x, y Lab) float64 {
	const kL, kC, kH = 1.0, 1.0, 1.0

	// Step 1: a' and C', h'.
	c1 := math.Hypot(x.A, x.B)
	c2 := math.Hypot(y.A, y.B)
	cBar7 := math.Pow((c1+c2)/2, 7)
	g := 0.5 * (1 - math.Sqrt(cBar7/(cBar7+pow25To7)))

	a1 := (1 + g) * x.A
	a2 := (1 + g) * y.A
	cp1 := math.Hypot(a1, x.B)
	cp2 := math.Hypot(a2, y.B)
	hp1 := primeHue(x.B, a1)
	hp2 := primeHue(y.B, a2)

	// Step 2: differences.
	dLp := y.L - x.L
	dCp := cp2 - cp1

	var dhp float64
	cpProduct := cp1 * cp2
	if cpProduct != 0 {
		dhp = hp2 - hp1
		if dhp > 180 {
			dhp -= 360
		} else if dhp < -180 {
			dhp += 360
		}
	}
	dHp := 2 * math.Sqrt(cpProduct) * math.Sin(degToRad(dhp/2))

	// Step 3: weighting functions.
	lBarP := (x.L + y.L) / 2
	cBarP := (cp1 + cp2) / 2

	hBarP := hp1 + hp2
	if cpProduct != 0 {
		switch {
		case math.Abs(hp1-hp2) <= 180:
			hBarP /= 2
		case hBarP < 360:
			hBarP = (hBarP + 360) / 2
		default:
			hBarP = (hBarP - 360) / 2
		}
	}

	t := 1 -
		0.17*math.Cos(degToRad(hBarP-30)) +
		0.24*math.Cos(degToRad(2*hBarP)) +
		0.32*math.Cos(degToRad(3*hBarP+6)) -
		0.20*math.Cos(degToRad(4*hBarP-63))

	dTheta := 30 * math.Exp(-math.Pow((hBarP-275)/25, 2))
	cBarP7 := math.Pow(cBarP, 7)
	rC := 2 * math.Sqrt(cBarP7/(cBarP7+pow25To7))

	lOffset := (lBarP - 50) * (lBarP - 50)
	sL := 1 + 0.015*lOffset/math.Sqrt(20+lOffset)
	sC := 1 + 0.045*cBarP
	sH := 1 + 0.015*cBarP*t
	rT := -math.Sin(degToRad(2*dTheta)) * rC

	lTerm := dLp / (kL * sL)
	cTerm := dCp / (kC * sC)
	hTerm := dHp / (kH * sH)

	return math.Sqrt(lTerm*lTerm + cTerm*cTerm + hTerm*hTerm + rT*cTerm*hTerm)
}

// Chroma returns the Lab chroma sqrt(a^2 + b^2).
func Chroma(lab Lab) float64 {
	return math.Hypot(lab.A, lab.B)
}

// Hue returns the Lab hue angle atan2(b, a) in degrees, normalised to [0, 360).
func Hue(lab Lab) float64 {
	return normaliseDegrees(radToDeg(math.Atan2(lab.B, lab.A)))
}

// LCh returns the lightness, chroma and hue of lab.
func (lab Lab) LCh() (l, c, h float64) {
	return lab.L, Chroma(lab), Hue(lab)
}

// primeHue returns the hue angle in degrees for the CIEDE2000 a' axis.
func primeHue(b, aPrime float64) float64 {
	if b == 0 && aPrime == 0 {
		return 0
	}
	return normaliseDegrees(radToDeg(math.Atan2(b, aPrime)))
}

func normaliseDegrees(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h -= 360
	}
	return h
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

func radToDeg(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}
