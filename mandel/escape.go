package mandel

// Escape iterates z <- z² + c from z = 0 with c = x + iy and returns how many
// steps completed before |z| reached 2. The step that escapes is not counted.
// A result equal to max means the orbit stayed bounded.
func Escape(x, y float64, max uint32) uint32 {
	var iter uint32
	var r, i float64
	for iter < max {
		r, i = r*r-i*i+x, 2*r*i+y
		if r*r+i*i >= 4 {
			break
		}
		iter++
	}
	return iter
}
