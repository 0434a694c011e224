package extractor

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// readTextFile reads a file as UTF-8, falling back to Latin-1 when the
// content is not valid UTF-8. Browser bookmark exports and old notes
// files are the usual offenders; Latin-1 maps every byte to a rune, so
// the fallback itself cannot fail on the content.
func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s as Latin-1: %w", path, err)
	}
	return string(decoded), nil
}
