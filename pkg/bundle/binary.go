// File: pkg/bundle/binary.go
package bundle

import "bytes"

// binarySniffLen is how much of a file is inspected for binary content.
const binarySniffLen = 512

// isBinaryContent reports whether data looks binary: a NUL byte, or more than
// 30% non-printable bytes, within the first binarySniffLen bytes. A recognized
// extension is no guarantee of text (".ts" is also MPEG transport stream video).
func isBinaryContent(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	if len(data) == 0 {
		return false // Empty files are considered text
	}

	// Check for null bytes (common in binary files)
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range data {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(data)) > 0.3
}

// isPrintable checks if a byte is printable ASCII, common whitespace, or part
// of a UTF-8 multi-byte sequence.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80
}
