package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// maxTextSize bounds what one document may hold. OCR dumps of a few pages are
// well under it.
const maxTextSize = 4 << 20

var ErrNotUTF8 = errors.New("document is not valid UTF-8")

// readText loads the OCR text of a document.
func readText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat: %w", err)
	}
	if info.Size() > maxTextSize {
		return "", fmt.Errorf("document too large: %d bytes", info.Size())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	if !utf8.Valid(b) {
		return "", ErrNotUTF8
	}
	return string(b), nil
}
