package darkroom

const DefaultISO = 400

// The whole-stop film speeds we render at.
var filmSpeeds = []int{50, 100, 200, 400, 800, 1600, 3200}

// SnapISO rounds a camera ISO down to a whole film stop, within [50,3200].
// ISO 640 becomes 400, ISO 12800 becomes 3200.
func SnapISO(iso int) int {
	ret := filmSpeeds[0]
	for _, speed := range filmSpeeds {
		if speed <= iso {
			ret = speed
		}
	}
	return ret
}
