package outline

import "strings"

// minPrintableRun is the shortest run of printable bytes worth keeping;
// shorter runs inside binary data are almost always noise.
const minPrintableRun = 4

// ExtractPrintable recovers readable text from arbitrary bytes by keeping
// runs of printable characters, one run per line. On plain-text input this
// preserves the original lines; on binary input it behaves like strings(1).
// It deliberately knows nothing about PDF structure.
func ExtractPrintable(data []byte) string {
	var lines []string
	var run strings.Builder

	flush := func() {
		if run.Len() >= minPrintableRun {
			lines = append(lines, run.String())
		}
		run.Reset()
	}

	for _, b := range data {
		if b == '\t' || (b >= 0x20 && b <= 0x7e) {
			run.WriteByte(b)
		} else {
			flush()
		}
	}
	flush()

	return strings.Join(lines, "\n")
}
