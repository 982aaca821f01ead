package testutil

import (
	"reflect"
)

// DeepEqual is the struct equality check test code reaches for.
func DeepEqual(x, y interface{}) bool {
	return reflect.DeepEqual(x, y)
}
