package imgio

import (
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"github.com/jiro4989/tkfmw/pkg/cache"
	"github.com/jiro4989/tkfmw/pkg/errors"
)

// Load reads and decodes the image file at path.
// EXIF orientation is applied so the returned image is upright.
func Load(path string) (image.Image, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image %s does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "failed to decode %s", path)
	}
	return img, nil
}

// Decode decodes an image from r. The format is detected from the
// stream's magic bytes.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "failed to decode image")
	}
	return img, nil
}

// ContentHash reads path and returns the hex SHA-256 of its raw bytes.
// Cache keys use this so a re-encoded image never serves stale layouts.
func ContentHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "image %s does not exist", path)
		}
		return "", errors.Wrap(errors.ErrCodeInternal, err, "failed to read %s", path)
	}
	return cache.Hash(data), nil
}
