package darkroom

import(
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"

	"github.com/abworrall/filmsim/pkg/ecolor"
)

// A DecodeError is returned when an input file can't be turned into a frame.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError)Error() string { return fmt.Sprintf("decode '%s': %v", e.Filename, e.Err) }
func (e *DecodeError)Unwrap() error { return e.Err }

// LoadFilesAndDirs adds image files to the roll as frames, and loads .yaml
// files as the roll's base configuration. Directories are recursed into; files
// with other extensions are skipped. Images are not decoded until Develop.
func (r *Roll)LoadFilesAndDirs(args ...string) (error) {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := ioutil.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if err := r.LoadFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return fmt.Errorf("load %s: %w", arg, err)
				}
			}

		default: // is a file, load it
			if err := r.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %w", arg, err)
			}
		}
	}

	return nil
}

func (r *Roll)loadFile(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {

	case ".yaml", ".yml":
		cfg, err := loadConfig(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %v", filename, err)
		}
		r.Config = cfg
		log.Printf("Loaded base configuration from %s\n", filename)

	default:
		if !IsImageFile(filename) {
			if r.Config.Verbosity > 0 {
				log.Printf("skipping %s\n", filename)
			}
			return nil
		}
		r.Frames = append(r.Frames, Frame{Filename: filename})
	}

	return nil
}

var imageExts = map[string]bool{
	".tif": true, ".tiff": true,
	".png": true, ".jpg": true, ".jpeg": true,
	".hdr": true,
}

func IsImageFile(filename string) bool {
	return imageExts[strings.ToLower(filepath.Ext(filename))]
}

func ImageExtensions() []string {
	exts := []string{}
	for ext := range imageExts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load decodes the frame's image file, and fills in its EXIF ISO. 16-bit
// TIFFs (e.g. linear exports from a RAW developer) become Linear16 buffers;
// PNGs and JPEGs become Gamma8; Radiance .hdr files become LinearFloat.
// Failures are *DecodeError.
func (f *Frame)Load() (ecolor.Buffer, error) {
	buf, err := DecodeImage(f.Filename)
	if err != nil {
		return buf, err
	}
	f.ISO = readExifISO(f.Filename)
	return buf, nil
}

// DecodeImage reads an image file into a buffer, tagged with the encoding its
// format implies.
func DecodeImage(filename string) (ecolor.Buffer, error) {
	var buf ecolor.Buffer

	reader, err := os.Open(filename)
	if err != nil {
		return buf, &DecodeError{filename, err}
	}
	defer reader.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tif", ".tiff":
		img, err := tiff.Decode(reader)
		if err != nil {
			return buf, &DecodeError{filename, fmt.Errorf("tiff: %v", err)}
		}
		buf = ecolor.FromImage(img)

	case ".hdr":
		img, err := rgbe.Decode(reader)
		if err != nil {
			return buf, &DecodeError{filename, fmt.Errorf("rgbe: %v", err)}
		}
		buf = ecolor.FromImage(img)

	case ".png", ".jpg", ".jpeg":
		img, _, err := image.Decode(reader)
		if err != nil {
			return buf, &DecodeError{filename, err}
		}
		buf = ecolor.FromImageAs(img, ecolor.Gamma8)

	default:
		return buf, &DecodeError{filename, fmt.Errorf("unknown image type")}
	}

	if buf.Empty() {
		return buf, &DecodeError{filename, fmt.Errorf("image is empty")}
	}

	return buf, nil
}

// readExifISO returns 0 if the file has no usable EXIF ISO; plenty of inputs don't.
func readExifISO(filename string) int {
	reader, err := os.Open(filename)
	if err != nil {
		return 0
	}
	defer reader.Close()

	if ex, err := exif.Decode(reader); err != nil {
		return 0
	} else if tag, err := ex.Get(exif.ISOSpeedRatings); err != nil {
		return 0
	} else if val, err := tag.Int64(0); err != nil {
		return 0
	} else {
		return int(val)
	}
}
