// Package attachment holds naming rules shared by the attachment backends.
package attachment

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxNameLen = 50
	timeLayout = "20060102150405"
)

// StorageName builds {timestamp}_{name}_{short uuid}{ext} from an uploaded
// file name. The extension is lower-cased.
func StorageName(original string, now time.Time) string {
	original = filepath.Base(original)
	ext := filepath.Ext(original)
	name := Sanitize(strings.TrimSuffix(original, ext))
	if len(name) > maxNameLen {
		name = strings.ToValidUTF8(name[:maxNameLen], "")
	}

	return fmt.Sprintf("%s_%s_%s%s", now.Format(timeLayout), name, uuid.NewString()[:8], strings.ToLower(ext))
}

// Sanitize keeps ASCII letters, digits, '-', '_' and Latin-1 accented letters.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' ||
			(r >= 0x00C0 && r <= 0x00FF) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
