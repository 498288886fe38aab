package canvas

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"

	"github.com/pkg/errors"
)

const dataURLPrefix = "data:image/png;base64,"

// EncodePNG returns the buffer as PNG. The encoder writes no timestamps, so
// an unchanged buffer always encodes to the same bytes.
func (s *Surface) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, s.img); err != nil {
		return nil, errors.Wrap(err, "can't encode surface")
	}
	return buf.Bytes(), nil
}

// DataURL is the transport form of the surface: a base64 PNG data URL.
func (s *Surface) DataURL() (string, error) {
	b, err := s.EncodePNG()
	if err != nil {
		return "", err
	}
	return EncodeDataURL(b), nil
}

func EncodeDataURL(pngData []byte) string {
	var sb strings.Builder
	sb.Grow(len(dataURLPrefix) + base64.StdEncoding.EncodedLen(len(pngData)))
	sb.WriteString(dataURLPrefix)
	sb.WriteString(base64.StdEncoding.EncodeToString(pngData))
	return sb.String()
}

// DecodeDataURL is the inverse of EncodeDataURL.
func DecodeDataURL(s string) ([]byte, error) {
	if !strings.HasPrefix(s, dataURLPrefix) {
		return nil, errors.New("not a png data url")
	}
	b, err := base64.StdEncoding.DecodeString(s[len(dataURLPrefix):])
	if err != nil {
		return nil, errors.Wrap(err, "bad data url payload")
	}
	return b, nil
}
