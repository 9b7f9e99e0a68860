package darkroom

import(
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/abworrall/filmsim/pkg/estats"
)

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

func WriteJPEG(img image.Image, filename string, quality int) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: quality})
	}
}

// presetSlug turns "Kodak Portra 400" into "kodak-portra-400", for filenames
func presetSlug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// OutputFilename is where the print of a frame goes: <outputdir>/<base>-<preset>.<ext>
func (r *Roll)OutputFilename(p Print, suffix, ext string) string {
	base := fmt.Sprintf("%s-%s%s.%s", p.Frame.Base(), presetSlug(p.Preset), suffix, ext)
	return filepath.Join(r.Config.OutputDir, base)
}

// Write saves the print, and whatever extras the config asks for. It returns
// the filenames written.
func (r *Roll)Write(p Print) ([]string, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	if err := os.MkdirAll(r.Config.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("mkdir '%s': %v", r.Config.OutputDir, err)
	}

	written := []string{}

	filename := r.OutputFilename(p, "", r.Config.OutputFormat)
	var err error
	switch r.Config.OutputFormat {
	case "png": err = WritePNG(p.Image, filename)
	default:    err = WriteJPEG(p.Image, filename, r.Config.JPEGQuality)
	}
	if err != nil {
		return written, err
	}
	written = append(written, filename)

	if r.Config.DumpHDR {
		filename := r.OutputFilename(p, "", "hdr")
		if err := p.Negative.WriteToHDR(filename); err != nil {
			return written, err
		}
		written = append(written, filename)
	}

	for _, name := range r.Config.ReferenceTonemappers {
		if r.Config.Verbosity > 0 {
			log.Printf("Tonemapping %s: %s", p.Frame.Base(), name)
		}
		img, err := ReferenceTonemap(name, p.Negative)
		if err != nil {
			return written, err
		}
		filename := r.OutputFilename(p, "-tmo-" + name, "png")
		if err := WritePNG(img, filename); err != nil {
			return written, err
		}
		written = append(written, filename)
	}

	if r.Config.Verbosity > 0 {
		summary := estats.Summarize(p.Image)
		log.Printf("%s: %s\n", filename, summary)
		if r.Config.Verbosity > 1 {
			log.Printf("%s levels: %v\n", filename, summary.Levels)
		}
	}

	return written, nil
}

// Compare measures how far a print is from a reference render (e.g. one made
// by an earlier version, or by another tool). With verbosity on, it also
// writes a diff image next to the output.
func (r *Roll)Compare(p Print, refFilename string) (float64, error) {
	if p.Err != nil {
		return 0, p.Err
	}
	reader, err := os.Open(refFilename)
	if err != nil {
		return 0, &DecodeError{refFilename, err}
	}
	defer reader.Close()
	refImg, _, err := image.Decode(reader)
	if err != nil {
		return 0, &DecodeError{refFilename, err}
	}

	metric, diff, err := estats.ImgDiff(p.Image, refImg)
	if err != nil {
		return 0, fmt.Errorf("compare '%s': %v", refFilename, err)
	}

	if r.Config.Verbosity > 0 {
		title := fmt.Sprintf("%s vs %s: mean dE=%.2f", p.Frame.Base(), filepath.Base(refFilename), metric)
		if err := diff.ToImg(title, r.OutputFilename(p, "-diff", "png")); err != nil {
			log.Printf("compare, writing diff: %v\n", err)
		}
	}

	return metric, nil
}
