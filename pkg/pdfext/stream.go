package pdfext

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// textRun is one positioned piece of text from a PDF content stream.
type textRun struct {
	X, Y float64
	Text string
}

var pdfStringRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)

// pageRuns extracts the positioned text runs of one page.
func pageRuns(ctx *pdfmodel.Context, pageNr int) ([]textRun, error) {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return runsFromStream(data), nil
}

// runsFromStream walks the content stream operators, tracking the text
// position through Tm/Td/TD/TL/T* so every shown string gets coordinates.
// Glyph advance within a line is not modeled; runs carry their line start.
func runsFromStream(data []byte) []textRun {
	var runs []textRun

	var lineX, lineY float64
	leading := 12.0

	appendText := func(line []byte) {
		for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
			text := strings.TrimSpace(decodePDFString(m[1]))
			if text == "" {
				continue
			}
			// Merge with a run already at this position (multiple show
			// operators on one text line).
			if n := len(runs); n > 0 && runs[n-1].X == lineX && runs[n-1].Y == lineY {
				runs[n-1].Text += text
				continue
			}
			runs = append(runs, textRun{X: lineX, Y: lineY, Text: text})
		}
	}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tm")):
			fields := strings.Fields(string(line))
			if len(fields) >= 7 {
				if e, err1 := strconv.ParseFloat(fields[len(fields)-3], 64); err1 == nil {
					if f, err2 := strconv.ParseFloat(fields[len(fields)-2], 64); err2 == nil {
						lineX, lineY = e, f
					}
				}
			}
		case bytes.HasSuffix(line, []byte("TD")), bytes.HasSuffix(line, []byte("Td")):
			fields := strings.Fields(string(line))
			if len(fields) >= 3 {
				tx, err1 := strconv.ParseFloat(fields[len(fields)-3], 64)
				ty, err2 := strconv.ParseFloat(fields[len(fields)-2], 64)
				if err1 == nil && err2 == nil {
					lineX += tx
					lineY += ty
					if bytes.HasSuffix(line, []byte("TD")) && ty != 0 {
						leading = -ty
					}
				}
			}
		case bytes.HasSuffix(line, []byte("TL")):
			fields := strings.Fields(string(line))
			if len(fields) >= 2 {
				if l, err := strconv.ParseFloat(fields[len(fields)-2], 64); err == nil && l != 0 {
					leading = l
				}
			}
		case bytes.Equal(line, []byte("T*")):
			lineY -= leading
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			appendText(line)
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			lineY -= leading
			appendText(line)
		}
	}

	return runs
}

// decodePDFString resolves the escape sequences of a PDF string literal,
// including octal escapes like \040.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}
