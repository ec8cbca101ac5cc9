package color

import "math"

// DeltaE2000 returns the CIEDE2000 distance between two colors,
// computed in CIE Lab.
func DeltaE2000(c1, c2 Color) float64 {
	lab1, lab2 := c1.Convert(Lab).channels(), c2.Convert(Lab).channels()
	L1, a1, b1 := lab1[0], lab1[1], lab1[2]
	L2, a2, b2 := lab2[0], lab2[1], lab2[2]

	C1, C2 := math.Hypot(a1, b1), math.Hypot(a2, b2)
	Cbar := (C1 + C2) / 2
	Cbar7 := math.Pow(Cbar, 7)
	const pow25_7 = 6103515625 // 25^7
	G := 0.5 * (1 - math.Sqrt(Cbar7/(Cbar7+pow25_7)))

	adash1, adash2 := (1+G)*a1, (1+G)*a2
	Cdash1, Cdash2 := math.Hypot(adash1, b1), math.Hypot(adash2, b2)

	hue := func(a, b float64) float64 {
		if a == 0 && b == 0 {
			return 0
		}
		h := math.Atan2(b, a) * 180 / math.Pi
		if h < 0 {
			h += 360
		}
		return h
	}
	h1, h2 := hue(adash1, b1), hue(adash2, b2)

	deltaL := L2 - L1
	deltaC := Cdash2 - Cdash1

	var deltah float64
	hdiff := h2 - h1
	switch {
	case Cdash1*Cdash2 == 0:
		deltah = 0
	case math.Abs(hdiff) <= 180:
		deltah = hdiff
	case hdiff > 180:
		deltah = hdiff - 360
	default:
		deltah = hdiff + 360
	}
	deltaH := 2 * math.Sqrt(Cdash1*Cdash2) * math.Sin(deltah*math.Pi/360)

	Ldash := (L1 + L2) / 2
	Cdash := (Cdash1 + Cdash2) / 2
	Cdash7 := math.Pow(Cdash, 7)

	var hdash float64
	hsum := h1 + h2
	switch {
	case Cdash1*Cdash2 == 0:
		hdash = hsum
	case math.Abs(hdiff) <= 180:
		hdash = hsum / 2
	case hsum < 360:
		hdash = (hsum + 360) / 2
	default:
		hdash = (hsum - 360) / 2
	}

	lsq := (Ldash - 50) * (Ldash - 50)
	SL := 1 + (0.015*lsq)/math.Sqrt(20+lsq)
	SC := 1 + 0.045*Cdash

	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	T := 1 - 0.17*math.Cos(rad(hdash-30)) +
		0.24*math.Cos(rad(2*hdash)) +
		0.32*math.Cos(rad(3*hdash+6)) -
		0.20*math.Cos(rad(4*hdash-63))
	SH := 1 + 0.015*Cdash*T

	deltaTheta := 30 * math.Exp(-math.Pow((hdash-275)/25, 2))
	RC := 2 * math.Sqrt(Cdash7/(Cdash7+pow25_7))
	RT := -1 * math.Sin(rad(2*deltaTheta)) * RC

	dE := math.Pow(deltaL/SL, 2) +
		math.Pow(deltaC/SC, 2) +
		math.Pow(deltaH/SH, 2) +
		RT*(deltaC/SC)*(deltaH/SH)
	return math.Sqrt(math.Max(dE, 0))
}

// DeltaEOK returns the euclidean distance between two colors
// in OKLab.
func DeltaEOK(c1, c2 Color) float64 {
	lab1, lab2 := c1.Convert(OKLab).channels(), c2.Convert(OKLab).channels()
	dL, da, db := lab1[0]-lab2[0], lab1[1]-lab2[1], lab1[2]-lab2[2]
	return math.Sqrt(dL*dL + da*da + db*db)
}
