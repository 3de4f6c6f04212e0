package iconbadge

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

// Encode writes the image into w. When w is a file other than stdout the format
// is deduced from its name, otherwise the image is encoded as PNG.
func Encode(w io.Writer, img image.Image) error {
	format := imaging.PNG

	if f, ok := w.(*os.File); ok && f != os.Stdout {
		ff, err := imaging.FormatFromFilename(f.Name())
		if err != nil {
			return fmt.Errorf("unsupported image format: %v", err)
		}
		format = ff
	}
	return imaging.Encode(w, img, format)
}

// saveImg writes the image into the named file. The file is only created
// once the image is ready, so a failed render never leaves a partial file behind.
func saveImg(path string, img image.Image) (err error) {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("unsupported image format: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close the destination file: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return Encode(f, img)
}
