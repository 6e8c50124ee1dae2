package producer

import (
	"bytes"
	"fmt"
	"os"
)

// LoadPayload reads the file published on every iteration.
// Line endings are normalised to "\n" and the last line is always terminated.
func LoadPayload(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is from config
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}
	if len(data) == 0 {
		return data, nil
	}

	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	if data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}
