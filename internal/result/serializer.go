package result

import (
	"strconv"
	"strings"
)

// Record is the serializer's owned output: a self-describing textual
// record. The serializer "owns" the returned memory in
// the Go sense of a string the caller should stop referencing once
// Release is called — Release is a no-op here (Go strings need no
// manual free) and exists so the pure-Go API mirrors the ABI's
// init/detect/release shape the cgo layer (cmd/libyolo) must honor for
// real.
type Record struct {
	text string
}

// String returns the serialized record text.
func (r Record) String() string { return r.text }

// Release is the pure-Go counterpart of the ABI's free_string. It does
// nothing; it exists so callers written against this API translate
// directly to the cgo-exported one.
func (r Record) Release() {}

// Marshal serializes a successful Result into its on-the-wire field set:
// detections (class_id, class_name, confidence to four decimal places,
// x1/y1/x2/y2 to two decimal places), count, inference_time_ms,
// image_width, image_height.
func Marshal(res Result) Record {
	if res.Err != nil {
		return marshalError(res.Err)
	}

	var b strings.Builder
	b.WriteString(`{"detections":[`)
	for i, d := range res.Detections {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"class_id":`)
		b.WriteString(strconv.Itoa(d.ClassID))
		b.WriteString(`,"class_name":`)
		b.WriteString(quoteJSON(d.ClassName))
		b.WriteString(`,"confidence":`)
		b.WriteString(formatFixed(float64(d.Confidence), 4))
		b.WriteString(`,"x1":`)
		b.WriteString(formatFixed(float64(d.X1), 2))
		b.WriteString(`,"y1":`)
		b.WriteString(formatFixed(float64(d.Y1), 2))
		b.WriteString(`,"x2":`)
		b.WriteString(formatFixed(float64(d.X2), 2))
		b.WriteString(`,"y2":`)
		b.WriteString(formatFixed(float64(d.Y2), 2))
		b.WriteByte('}')
	}
	b.WriteString(`],"count":`)
	b.WriteString(strconv.Itoa(res.Count))
	b.WriteString(`,"inference_time_ms":`)
	b.WriteString(strconv.FormatInt(res.InferenceTimeMs, 10))
	b.WriteString(`,"image_width":`)
	b.WriteString(strconv.Itoa(res.ImageWidth))
	b.WriteString(`,"image_height":`)
	b.WriteString(strconv.Itoa(res.ImageHeight))
	b.WriteByte('}')

	return Record{text: b.String()}
}

func marshalError(err *Error) Record {
	var b strings.Builder
	b.WriteString(`{"error":`)
	b.WriteString(quoteJSON(err.Message))
	b.WriteString(`,"code":`)
	b.WriteString(quoteJSON(string(err.Code)))
	b.WriteByte('}')
	return Record{text: b.String()}
}

func formatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// quoteJSON wraps s in double quotes, escaping '"', '\\', newline,
// carriage return and tab, without pulling in the full encoder for two
// call sites. All other characters, including other control characters,
// are written unchanged.
func quoteJSON(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
