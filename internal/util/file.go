package util

import (
	"bytes"
	"github.com/natefinch/atomic"
	"path/filepath"
)

// WriteFileAtomic writes data to path, replacing any existing file
// only once the new content is completely written.
func WriteFileAtomic(path string, data []byte) error {
	evaluatedPath, err := filepath.EvalSymlinks(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
