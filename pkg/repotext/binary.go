package repotext

import "bytes"

// Classifier decides whether file content is binary by inspecting a bounded
// prefix of its bytes. It is a pure function of the prefix; file names and
// extensions play no part.
type Classifier struct {
	SniffBytes int     // Maximum prefix length to inspect.
	Threshold  float64 // Non-printable byte ratio above which content is binary.
}

// NewClassifier returns a Classifier with the default policy values.
func NewClassifier() Classifier {
	return Classifier{SniffBytes: DefaultSniffBytes, Threshold: DefaultBinaryThreshold}
}

// IsBinary reports whether the content appears to be binary: it contains a
// null byte, or the proportion of non-printable bytes in the inspected
// prefix exceeds the threshold. Empty content is text.
func (classifier Classifier) IsBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}

	prefix := content
	if classifier.SniffBytes > 0 && len(prefix) > classifier.SniffBytes {
		prefix = prefix[:classifier.SniffBytes]
	}

	if bytes.IndexByte(prefix, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range prefix {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(prefix)) > classifier.Threshold
}

// isPrintable reports whether a byte is printable ASCII or common whitespace.
// High bytes pass so that multi-byte UTF-8 text is not counted against the
// threshold.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 128
}
