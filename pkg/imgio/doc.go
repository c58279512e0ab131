// Package imgio handles image and layer import/export for tkfmw.
//
// Images are decoded and encoded through disintegration/imaging, which
// picks the codec from the file extension and applies EXIF orientation
// on load. Layer partitions travel as JSON so layouts can be computed
// once and replayed by other tools.
package imgio
