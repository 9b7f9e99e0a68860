package darkroom

import(
	"fmt"
	"path/filepath"
	"strings"
)

// A Frame is one input photo. Its pixels are only decoded when it is
// developed; see Load.
type Frame struct {
	Filename string
	ISO      int  // From the EXIF, or 0 if we couldn't find one (or haven't loaded it yet)
}

func (f Frame)String() string {
	return fmt.Sprintf("%s: exif ISO %d", f.Filename, f.ISO)
}

// Base is the filename without its directory or extension.
func (f Frame)Base() string {
	base := filepath.Base(f.Filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
