package core

import (
	"errors"
	"strconv"
	"strings"
)

const (
	reportPrefix = "Got "
	reportMiddle = " after "
	reportSuffix = " us!"

	// ReportMaxLen is the longest possible report line, CRLF included
	ReportMaxLen = len(reportPrefix+"255"+reportMiddle+"4294967295"+reportSuffix) + 2
)

// ErrMalformedReport is returned by ParseReport for lines it cannot read
var ErrMalformedReport = errors.New("malformed report line")

// Report is one echo reply: the received byte and the elapsed time at
// which it was handled
type Report struct {
	Byte   byte
	Micros uint32
}

// AppendReport appends "Got {b} after {us} us!\r\n" to dst without
// allocating when dst has room.
func AppendReport(dst []byte, b byte, us uint32) []byte {
	dst = append(dst, reportPrefix...)
	dst = strconv.AppendUint(dst, uint64(b), 10)
	dst = append(dst, reportMiddle...)
	dst = strconv.AppendUint(dst, uint64(us), 10)
	dst = append(dst, reportSuffix...)
	return append(dst, '\r', '\n')
}

// String formats the report as it appears on the wire, without CRLF
func (r Report) String() string {
	line := AppendReport(make([]byte, 0, ReportMaxLen), r.Byte, r.Micros)
	return string(line[:len(line)-2])
}

// ParseReport reads one report line. Trailing CR/LF is optional.
func ParseReport(line string) (Report, error) {
	line = strings.TrimRight(line, "\r\n")
	rest, ok := strings.CutPrefix(line, reportPrefix)
	if !ok {
		return Report{}, malformed(line)
	}
	rest, ok = strings.CutSuffix(rest, reportSuffix)
	if !ok {
		return Report{}, malformed(line)
	}
	b, us, ok := strings.Cut(rest, reportMiddle)
	if !ok {
		return Report{}, malformed(line)
	}

	bv, err := strconv.ParseUint(b, 10, 8)
	if err != nil {
		return Report{}, malformed(line)
	}
	usv, err := strconv.ParseUint(us, 10, 32)
	if err != nil {
		return Report{}, malformed(line)
	}
	return Report{Byte: byte(bv), Micros: uint32(usv)}, nil
}

// Elapsed returns the microseconds between two readings, accounting for
// one wrap of the 32-bit counter
func Elapsed(prev, cur uint32) uint32 {
	return cur - prev
}

type malformedError struct {
	line string
}

func (e *malformedError) Error() string {
	return ErrMalformedReport.Error() + ": " + strconv.Quote(e.line)
}

func (e *malformedError) Unwrap() error {
	return ErrMalformedReport
}

func malformed(line string) error {
	return &malformedError{line: line}
}
