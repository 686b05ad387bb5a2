package report

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveOutputPath implements the mandated output-path rule: if the
// configured path denotes an existing directory or ends with a path
// separator, the engine creates it if missing and composes a file name
// "<coder>_<modem>_<channel>.<ext>" from lower-cased, slugged tokens.
// Otherwise the path is literal and its parent directory is created if
// absent.
func ResolveOutputPath(outFile, coderName, modemName, channelName, ext string) (string, error) {
	endsInSep := len(outFile) > 0 && (outFile[len(outFile)-1] == '/' || outFile[len(outFile)-1] == filepath.Separator)
	isDir := false
	if st, err := os.Stat(outFile); err == nil {
		isDir = st.IsDir()
	}

	if endsInSep || isDir {
		if outFile != "" {
			if err := os.MkdirAll(outFile, 0o755); err != nil {
				return "", err
			}
		}
		name := slug(coderName) + "_" + slug(modemName) + "_" + slug(channelName) + "." + ext
		return filepath.Join(outFile, name), nil
	}

	if parent := filepath.Dir(outFile); parent != "" && parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return "", err
		}
	}
	return outFile, nil
}

// slug lower-cases s and replaces any rune that is not alphanumeric, '.',
// '-', or '_' with '_'.
func slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
