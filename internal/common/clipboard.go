package common

import (
	"github.com/atotto/clipboard"
)

// SetClipboardValue copies the given text to the system clipboard.
func SetClipboardValue(value string) error {
	return clipboard.WriteAll(value)
}

// GetClipboardValue returns the current system clipboard content.
func GetClipboardValue() (string, error) {
	return clipboard.ReadAll()
}
