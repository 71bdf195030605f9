package parser

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decode validates UTF-8 content and drops a leading byte order mark
func decode(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", ErrInvalidEncoding
	}

	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), content)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// splitLines treats \n, \r\n and \r as line terminators
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
