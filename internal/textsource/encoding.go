package textsource

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	detectionSampleSize          = 4096
	nonPrintableThresholdPercent = 30
)

type fileEncoding int

const (
	encodingPlain fileEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

func detectEncoding(sample []byte) fileEncoding {
	if len(sample) >= 3 && sample[0] == 0xef && sample[1] == 0xbb && sample[2] == 0xbf {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		if sample[0] == 0xff && sample[1] == 0xfe {
			return encodingUTF16LE
		}
		if sample[0] == 0xfe && sample[1] == 0xff {
			return encodingUTF16BE
		}
	}
	return encodingPlain
}

func bomLength(sample []byte) int {
	if detectEncoding(sample) == encodingUTF8BOM {
		return 3
	}
	return 0
}

// decodeUTF16File reads the whole file and decodes it to UTF-8 lines.
// UTF-16 content cannot be line-indexed by byte offset, so it lives in
// memory for the session.
func decodeUTF16File(file *os.File, enc fileEncoding) ([]string, error) {
	raw, err := io.ReadAll(io.NewSectionReader(file, 0, 1<<62))
	if err != nil {
		return nil, err
	}

	endianness := unicode.LittleEndian
	if enc == encodingUTF16BE {
		endianness = unicode.BigEndian
	}
	decoder := unicode.UTF16(endianness, unicode.ExpectBOM).NewDecoder()
	decoded, err := decoder.Bytes(raw)
	if err != nil {
		return nil, err
	}

	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// looksBinary applies a rule-of-thumb text heuristic: NUL bytes or a
// high ratio of non-printable content means the pager should refuse the file.
func looksBinary(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}
	if detectEncoding(sample) != encodingPlain {
		return false
	}
	if bytes.IndexByte(sample, 0) != -1 {
		return true
	}

	nonPrintable := 0
	total := 0
	for i := 0; i < len(sample); {
		r, size := utf8.DecodeRune(sample[i:])
		if r == utf8.RuneError && size == 1 {
			nonPrintable++
		} else if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			nonPrintable++
		}
		total++
		i += size
	}
	return total > 0 && nonPrintable*100/total > nonPrintableThresholdPercent
}
