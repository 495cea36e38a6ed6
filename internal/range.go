package internal

import (
	"strconv"
	"strings"
)

// ByteRange is a resolved inclusive byte span within content of Total size.
type ByteRange struct {
	Start uint64
	End   uint64
	Total uint64
}

// Length returns the number of bytes covered by the span.
func (r ByteRange) Length() uint64 {
	return r.End - r.Start + 1
}

// RangeDecision classifies a Range header against the content size.
type RangeDecision int

const (
	// RangeFull means no Range header was sent; serve the whole content.
	RangeFull RangeDecision = iota
	// RangeSatisfiable carries a resolved ByteRange.
	RangeSatisfiable
	// RangeUnsatisfiable means the requested start lies beyond the content.
	RangeUnsatisfiable
	// RangeMalformed means a header was sent without the bytes= prefix.
	RangeMalformed
)

const bytesPrefix = "bytes="

// ParseRange interprets a Range header of the form "bytes=<start>-[<end>]"
// against a total content size. Numeric sub-fields are parsed permissively:
// a start that fails to parse falls back to 0 and a bad or missing end falls
// back to the last byte. Real players send partially formed headers, so the
// leniency is intentional. Only the first range directive is honored;
// multipart range sets are not supported.
func ParseRange(header string, total uint64) (ByteRange, RangeDecision) {
	if header == "" {
		return ByteRange{}, RangeFull
	}
	if !strings.HasPrefix(header, bytesPrefix) {
		return ByteRange{}, RangeMalformed
	}

	parts := strings.Split(strings.TrimPrefix(header, bytesPrefix), "-")
	start, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		start = 0
	}
	if start >= total {
		return ByteRange{Total: total}, RangeUnsatisfiable
	}

	end := total - 1
	if len(parts) > 1 && parts[1] != "" {
		if parsed, perr := strconv.ParseUint(parts[1], 10, 64); perr == nil {
			end = parsed
		}
	}
	if end > total-1 || end < start {
		// an inverted end is treated like a missing one
		end = total - 1
	}

	return ByteRange{Start: start, End: end, Total: total}, RangeSatisfiable
}
