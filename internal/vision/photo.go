package vision

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/auditpack/auditpack/constants"
	"github.com/auditpack/auditpack/internal/common"
)

var reDataURL = regexp.MustCompile(`^data:(image/[a-zA-Z0-9.+-]+);base64,`)

// ImagePart splits a photo data URL into the MIME type declared by its
// encoding header and the base64 payload. Unparseable headers fall back to
// constants.DefaultImageMIME; a bare base64 string passes through unchanged.
func ImagePart(photo string) (mimeType, data string) {
	mimeType = constants.DefaultImageMIME
	if m := reDataURL.FindStringSubmatch(photo); m != nil {
		mimeType = m[1]
	}
	data = photo
	if i := strings.IndexByte(photo, ','); i >= 0 {
		data = photo[i+1:]
	}
	return mimeType, data
}

// ReadAsDataURL loads an image file and encodes it the way the capture
// surface delivers photos. Used by the CLI upload path.
func ReadAsDataURL(path string) (string, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		return "", common.ValidationError(fmt.Sprintf("unsupported image type %q", filepath.Ext(path)))
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mt, ok := constants.MIMEByExtension[ext]
	if !ok {
		mt = constants.DefaultImageMIME
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}
