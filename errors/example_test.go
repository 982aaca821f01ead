package errors_test

import (
	"fmt"

	"github.com/tokenizando/covenant/errors"
)

var ErrUnauthorized = errors.New("unauthorized")

func ExampleSub() {
	err := verify()
	if err != nil {
		err = errors.Sub(ErrUnauthorized, err)
	}
	fmt.Println(errors.Root(err) == ErrUnauthorized)
	// Output: true
}

func ExampleWithDetailf() {
	base := errors.New("commitment mismatch")
	err := errors.WithDetailf(base, "output %d", 2)
	fmt.Println(errors.Detail(err))
	// Output: output 2
}

func verify() error { return errors.New("bad signature") }
