package render

// Viewport tracks the output size and the low-resolution target derived
// from it.
type Viewport struct {
	Width, Height int
	Resolution    float32
}

func NewViewport(width, height int, resolution float32) Viewport {
	if resolution <= 0 || resolution > 1 {
		resolution = 1
	}
	return Viewport{Width: width, Height: height, Resolution: resolution}
}

// Target is the size of the offscreen render, at least 1x1.
func (v Viewport) Target() (int, int) {
	w := int(float32(v.Width) * v.Resolution)
	h := int(float32(v.Height) * v.Resolution)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Aspect is the camera aspect ratio for the output.
func (v Viewport) Aspect() float32 {
	if v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Resize sets a new output size and reports whether the offscreen target
// has to be rebuilt.
func (v *Viewport) Resize(width, height int) bool {
	if width <= 0 || height <= 0 || (width == v.Width && height == v.Height) {
		return false
	}
	ow, oh := v.Target()
	v.Width, v.Height = width, height
	nw, nh := v.Target()
	return ow != nw || oh != nh
}

// SetResolution changes the render scale and reports whether the offscreen
// target has to be rebuilt. Values outside (0, 1] are ignored.
func (v *Viewport) SetResolution(resolution float32) bool {
	if resolution <= 0 || resolution > 1 || resolution == v.Resolution {
		return false
	}
	ow, oh := v.Target()
	v.Resolution = resolution
	nw, nh := v.Target()
	return ow != nw || oh != nh
}
