package avatar

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/disintegration/imaging"
)

// Size is the fixed square dimension every stored avatar is normalized to
const Size = 250

type Resizer interface {
	ResizeSquare(content []byte, filename string, size int) ([]byte, error)
}

var _ Resizer = ImagingResizer{}

type ImagingResizer struct{}

// ResizeSquare scales and center-crops the image to size x size,
// re-encoded in the format implied by the original filename
func (ImagingResizer) ResizeSquare(content []byte, filename string, size int) ([]byte, error) {
	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to determine image format from the filename")
	}

	img, err := imaging.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to decode the uploaded image")
	}

	filled := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	output := bytes.Buffer{}
	if err := imaging.Encode(&output, filled, format); err != nil {
		return nil, errors.Wrap(err, "Failed to encode the resized image")
	}

	return output.Bytes(), nil
}
