// Package assert provides the few test assertions that testify does not
// cover for this module: error matching by registered type and field
// error lookup.
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/onesig/errors"
)

// Tester is the part of testing.TB the assertions of this package use.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test unless value is nil or a typed nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if value == nil {
		return
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		if v.IsNil() {
			return
		}
	}
	// %+v prints the stack trace of wrapped errors.
	t.Fatalf("want nil, got %+v", value)
}

// Equal fails the test if want and got are not deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails the test if fn returns without panicking.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("want panic")
		}
	}()
	fn()
}

// IsErr fails the test unless got is want or has want as its type. A nil
// want matches only a nil got.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if w, ok := want.(interface{ Is(error) bool }); ok && w.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError checks the errors reported for a single field. A nil want
// asserts that the field has no error, otherwise exactly one error of
// the wanted type must be reported.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, field)
	if want == nil {
		if len(errs) != 0 {
			logAll(t, errs)
			t.Fatalf("want no %q error, got %d", field, len(errs))
		}
		return
	}
	switch len(errs) {
	case 0:
		t.Fatalf("no %q error", field)
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("want %q error %q, got %q", field, want, errs[0])
		}
	default:
		logAll(t, errs)
		t.Fatalf("want one %q error, got %d", field, len(errs))
	}
}

func logAll(t testing.TB, errs []error) {
	for i, e := range errs {
		t.Logf("\terror %d: %q", i+1, e)
	}
}
