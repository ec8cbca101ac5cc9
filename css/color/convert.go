package color

import (
	"math"

	"github.com/benoitkugler/cssom/matrix"
	"github.com/benoitkugler/cssom/utils"
	"github.com/tdewolff/parse/v2/css"
)

type vec = matrix.Vec3

var (
	// D50 reference white used by Lab and LCh
	whiteD50 = vec{0.96422, 1.0, 0.82521}

	// Bradford chromatic adaptation from D65 to D50
	d65ToD50 = matrix.Mat3{
		{1.0478112, 0.0228866, -0.0501270},
		{0.0295424, 0.9904844, -0.0170491},
		{-0.0092345, 0.0150436, 0.7521316},
	}
	d50ToD65 = d65ToD50.Inverse()

	linearSRGBToXYZ = matrix.Mat3{
		{506752. / 1228815, 87881. / 245763, 12673. / 70218},
		{87098. / 409605, 175762. / 245763, 12673. / 175545},
		{7918. / 409605, 87881. / 737289, 1001167. / 1053270},
	}
	linearP3ToXYZ = matrix.Mat3{
		{608311. / 1250200, 189793. / 714400, 198249. / 1000160},
		{35783. / 156275, 247089. / 357200, 198249. / 2500400},
		{0, 32229. / 714400, 5220557. / 5000800},
	}
	linearA98ToXYZ = matrix.Mat3{
		{573536. / 994567, 263643. / 1420810, 187206. / 994567},
		{591459. / 1989134, 6239551. / 9945670, 374412. / 4972835},
		{53769. / 1989134, 351524. / 4972835, 4929758. / 4972835},
	}
	// relative to D50
	linearProPhotoToXYZ = matrix.Mat3{
		{0.7977666449006423, 0.13518129740053308, 0.0313477341283922},
		{0.2880748288194013, 0.711835234241873, 0.00008993693872564},
		{0.0, 0.0, 0.8251046025104602},
	}
	linearRec2020ToXYZ = matrix.Mat3{
		{63426534. / 99577255, 20160776. / 139408157, 47086771. / 278816314},
		{26158966. / 99577255, 472592308. / 697040785, 8267143. / 139408157},
		{0, 19567812. / 697040785, 295819943. / 278816314},
	}

	xyzToLinearSRGB     = linearSRGBToXYZ.Inverse()
	xyzToLinearP3       = linearP3ToXYZ.Inverse()
	xyzToLinearA98      = linearA98ToXYZ.Inverse()
	xyzToLinearProPhoto = linearProPhotoToXYZ.Inverse()
	xyzToLinearRec2020  = linearRec2020ToXYZ.Inverse()

	xyzToLMS = matrix.Mat3{
		{0.8189330101, 0.3618667424, -0.1288597137},
		{0.0329845436, 0.9293118715, 0.0361456387},
		{0.0482003018, 0.2643662691, 0.6338517070},
	}
	lmsToOKLab = matrix.Mat3{
		{0.2104542553, 0.7936177850, -0.0040720468},
		{1.9779984951, -2.4285922050, 0.4505937099},
		{0.0259040371, 0.7827717662, -0.8086757660},
	}
	lmsToXYZ   = xyzToLMS.Inverse()
	okLabToLMS = lmsToOKLab.Inverse()
)

const (
	labEpsilon = 216. / 24389
	labKappa   = 24389. / 27
)

// transfer curves, applied component wise, preserving the sign

func mapSigned(v vec, f func(float64) float64) vec {
	for i, c := range v {
		v[i] = math.Copysign(f(math.Abs(c)), c)
	}
	return v
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func srgbFromLinear(c float64) float64 {
	if c > 0.0031308 {
		return 1.055*math.Pow(c, 1/2.4) - 0.055
	}
	return 12.92 * c
}

func a98ToLinear(c float64) float64   { return math.Pow(c, 563./256) }
func a98FromLinear(c float64) float64 { return math.Pow(c, 256./563) }

func proPhotoToLinear(c float64) float64 {
	if c <= 16./512 {
		return c / 16
	}
	return math.Pow(c, 1.8)
}

func proPhotoFromLinear(c float64) float64 {
	if c >= 1./512 {
		return math.Pow(c, 1/1.8)
	}
	return 16 * c
}

const (
	rec2020Alpha = 1.09929682680944
	rec2020Beta  = 0.018053968510807
)

func rec2020ToLinear(c float64) float64 {
	if c < rec2020Beta*4.5 {
		return c / 4.5
	}
	return math.Pow((c+rec2020Alpha-1)/rec2020Alpha, 1/0.45)
}

func rec2020FromLinear(c float64) float64 {
	if c > rec2020Beta {
		return rec2020Alpha*math.Pow(c, 0.45) - (rec2020Alpha - 1)
	}
	return 4.5 * c
}

// polar <-> rectangular, with hue in degrees

func toPolar(v vec) vec {
	hue := utils.FloatModulo(math.Atan2(v[2], v[1])*180/math.Pi, 360)
	return vec{v[0], math.Hypot(v[1], v[2]), hue}
}

func fromPolar(v vec) vec {
	h := v[2] * math.Pi / 180
	return vec{v[0], v[1] * math.Cos(h), v[1] * math.Sin(h)}
}

func xyzD50ToLab(xyz vec) vec {
	var f vec
	for i := range xyz {
		t := xyz[i] / whiteD50[i]
		if t > labEpsilon {
			f[i] = math.Cbrt(t)
		} else {
			f[i] = (labKappa*t + 16) / 116
		}
	}
	return vec{116*f[1] - 16, 500 * (f[0] - f[1]), 200 * (f[1] - f[2])}
}

func labToXYZD50(lab vec) vec {
	fy := (lab[0] + 16) / 116
	fx := lab[1]/500 + fy
	fz := fy - lab[2]/200
	var xyz vec
	if fx3 := fx * fx * fx; fx3 > labEpsilon {
		xyz[0] = fx3
	} else {
		xyz[0] = (116*fx - 16) / labKappa
	}
	if lab[0] > labKappa*labEpsilon {
		xyz[1] = fy * fy * fy
	} else {
		xyz[1] = lab[0] / labKappa
	}
	if fz3 := fz * fz * fz; fz3 > labEpsilon {
		xyz[2] = fz3
	} else {
		xyz[2] = (116*fz - 16) / labKappa
	}
	for i := range xyz {
		xyz[i] *= whiteD50[i]
	}
	return xyz
}

func xyzD65ToOKLab(xyz vec) vec {
	lms := xyzToLMS.Apply(xyz)
	for i, c := range lms {
		lms[i] = math.Cbrt(c)
	}
	return lmsToOKLab.Apply(lms)
}

func okLabToXYZD65(lab vec) vec {
	lms := okLabToLMS.Apply(lab)
	for i, c := range lms {
		lms[i] = c * c * c
	}
	return lmsToXYZ.Apply(lms)
}

// hue in degrees, saturation and lightness in [0, 1]
func srgbToHSL(rgb vec) vec {
	r, g, b := rgb[0], rgb[1], rgb[2]
	max, min := utils.Maxs(r, g, b), utils.Mins(r, g, b)
	l := (max + min) / 2
	d := max - min
	var h, s float64
	if d != 0 {
		if l != 0 && l != 1 {
			s = (max - l) / math.Min(l, 1-l)
		}
		switch max {
		case r:
			h = (g - b) / d
		case g:
			h = (b-r)/d + 2
		case b:
			h = (r-g)/d + 4
		}
		h *= 60
	}
	if s < 0 {
		h += 180
		s = -s
	}
	return vec{utils.FloatModulo(h, 360), s, l}
}

func hslToSRGB(hsl vec) vec {
	h := utils.FloatModulo(hsl[0], 360) / 360
	r, g, b := css.HSL2RGB(h, hsl[1], hsl[2])
	return vec{r, g, b}
}

// hue in degrees, whiteness and blackness in [0, 1]
func srgbToHWB(rgb vec) vec {
	hsl := srgbToHSL(rgb)
	return vec{hsl[0], utils.Mins(rgb[0], rgb[1], rgb[2]), 1 - utils.Maxs(rgb[0], rgb[1], rgb[2])}
}

func hwbToSRGB(hwb vec) vec {
	w, b := hwb[1], hwb[2]
	if w+b >= 1 {
		gray := w / (w + b)
		return vec{gray, gray, gray}
	}
	rgb := hslToSRGB(vec{hwb[0], 1, 0.5})
	for i := range rgb {
		rgb[i] = rgb[i]*(1-w-b) + w
	}
	return rgb
}

// toXYZD65 maps the channels of the given space to CIE XYZ
// relative to D65.
func toXYZD65(s Space, v vec) vec {
	switch s {
	case SRGB:
		return linearSRGBToXYZ.Apply(mapSigned(v, srgbToLinear))
	case SRGBLinear:
		return linearSRGBToXYZ.Apply(v)
	case DisplayP3:
		return linearP3ToXYZ.Apply(mapSigned(v, srgbToLinear))
	case DisplayP3Linear:
		return linearP3ToXYZ.Apply(v)
	case A98RGB:
		return linearA98ToXYZ.Apply(mapSigned(v, a98ToLinear))
	case A98RGBLinear:
		return linearA98ToXYZ.Apply(v)
	case ProPhotoRGB:
		return d50ToD65.Apply(linearProPhotoToXYZ.Apply(mapSigned(v, proPhotoToLinear)))
	case ProPhotoRGBLinear:
		return d50ToD65.Apply(linearProPhotoToXYZ.Apply(v))
	case Rec2020:
		return linearRec2020ToXYZ.Apply(mapSigned(v, rec2020ToLinear))
	case Rec2020Linear:
		return linearRec2020ToXYZ.Apply(v)
	case XYZD50:
		return d50ToD65.Apply(v)
	case XYZD65:
		return v
	case Lab:
		return d50ToD65.Apply(labToXYZD50(v))
	case LCh:
		return d50ToD65.Apply(labToXYZD50(fromPolar(v)))
	case OKLab:
		return okLabToXYZD65(v)
	case OKLCh:
		return okLabToXYZD65(fromPolar(v))
	case HSL:
		return toXYZD65(SRGB, hslToSRGB(v))
	case HWB:
		return toXYZD65(SRGB, hwbToSRGB(v))
	}
	return v
}

// fromXYZD65 is the inverse of toXYZD65
func fromXYZD65(s Space, xyz vec) vec {
	switch s {
	case SRGB:
		return mapSigned(xyzToLinearSRGB.Apply(xyz), srgbFromLinear)
	case SRGBLinear:
		return xyzToLinearSRGB.Apply(xyz)
	case DisplayP3:
		return mapSigned(xyzToLinearP3.Apply(xyz), srgbFromLinear)
	case DisplayP3Linear:
		return xyzToLinearP3.Apply(xyz)
	case A98RGB:
		return mapSigned(xyzToLinearA98.Apply(xyz), a98FromLinear)
	case A98RGBLinear:
		return xyzToLinearA98.Apply(xyz)
	case ProPhotoRGB:
		return mapSigned(xyzToLinearProPhoto.Apply(d65ToD50.Apply(xyz)), proPhotoFromLinear)
	case ProPhotoRGBLinear:
		return xyzToLinearProPhoto.Apply(d65ToD50.Apply(xyz))
	case Rec2020:
		return mapSigned(xyzToLinearRec2020.Apply(xyz), rec2020FromLinear)
	case Rec2020Linear:
		return xyzToLinearRec2020.Apply(xyz)
	case XYZD50:
		return d65ToD50.Apply(xyz)
	case XYZD65:
		return xyz
	case Lab:
		return xyzD50ToLab(d65ToD50.Apply(xyz))
	case LCh:
		return toPolar(xyzD50ToLab(d65ToD50.Apply(xyz)))
	case OKLab:
		return xyzD65ToOKLab(xyz)
	case OKLCh:
		return toPolar(xyzD65ToOKLab(xyz))
	case HSL:
		return srgbToHSL(fromXYZD65(SRGB, xyz))
	case HWB:
		return srgbToHWB(fromXYZD65(SRGB, xyz))
	}
	return xyz
}

// convertChannels converts between spaces, taking shortcuts
// for the sRGB cylindrical models to avoid the XYZ round trip.
func convertChannels(from, to Space, v vec) vec {
	if from == to {
		return v
	}
	switch {
	case from == HSL && to == SRGB:
		return hslToSRGB(v)
	case from == HWB && to == SRGB:
		return hwbToSRGB(v)
	case from == SRGB && to == HSL:
		return srgbToHSL(v)
	case from == SRGB && to == HWB:
		return srgbToHWB(v)
	case from == HSL && to == HWB:
		return srgbToHWB(hslToSRGB(v))
	case from == HWB && to == HSL:
		return srgbToHSL(hwbToSRGB(v))
	case from == Lab && to == LCh, from == OKLab && to == OKLCh:
		return toPolar(v)
	case from == LCh && to == Lab, from == OKLCh && to == OKLab:
		return fromPolar(v)
	}
	return fromXYZD65(to, toXYZD65(from, v))
}
