package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all non nil errors into a single error. It returns
// nil when there is nothing to report and the error itself when there is
// only one.
func Append(errs ...error) error {
	var flat multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			flat = append(flat, m...)
		} else {
			flat = append(flat, e)
		}
	}
	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	}
	return flat
}

type multiErr []error

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, e := range m {
		points[i] = fmt.Sprintf("* %s", e)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(points, "\n\t"))
}

func (m multiErr) Unpack() []error {
	return m
}

// ABCICode reports the code of the first error.
func (m multiErr) ABCICode() uint32 {
	return Code(m[0])
}
