package errors

import (
	"testing"
)

func TestWrap(t *testing.T) {
	err := New("rock")

	err1 := Wrap(err, "paper")
	if got := err1.Error(); got != "paper: rock" {
		t.Errorf("got %q want %q", got, "paper: rock")
	}
	if got := Root(err1); got != err {
		t.Errorf("got root %v want %v", got, err)
	}

	err2 := Wrapf(err1, "scissors %d", 2)
	if got := err2.Error(); got != "scissors 2: paper: rock" {
		t.Errorf("got %q want %q", got, "scissors 2: paper: rock")
	}
	if got := Root(err2); got != err {
		t.Errorf("got root %v want %v", got, err)
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "banana"); err != nil {
		t.Errorf("Wrap(nil) = %v want nil", err)
	}
	if err := Wrapf(nil, "banana %d", 1); err != nil {
		t.Errorf("Wrapf(nil) = %v want nil", err)
	}
	if err := WithDetail(nil, "banana"); err != nil {
		t.Errorf("WithDetail(nil) = %v want nil", err)
	}
	if err := Sub(New("root"), nil); err != nil {
		t.Errorf("Sub(root, nil) = %v want nil", err)
	}
}

func TestDetail(t *testing.T) {
	root := New("blam")
	err := WithDetail(root, "first detail")
	err = Wrap(err, "context")
	err = WithDetailf(err, "second detail %d", 2)

	if got := Detail(err); got != "first detail; second detail 2" {
		t.Errorf("Detail(err) = %q want %q", got, "first detail; second detail 2")
	}
	if got := Root(err); got != root {
		t.Errorf("got root %v want %v", got, root)
	}
}

func TestSub(t *testing.T) {
	rootA := New("a")
	rootB := New("b")

	err := WithDetail(Wrap(rootA, "note"), "some detail")
	got := Sub(rootB, err)
	if Root(got) != rootB {
		t.Errorf("Root(Sub(b, err)) = %v want %v", Root(got), rootB)
	}
	if Detail(got) != "some detail" {
		t.Errorf("Detail(Sub(b, err)) = %q want %q", Detail(got), "some detail")
	}

	got = Sub(rootB, rootA)
	if Root(got) != rootB {
		t.Errorf("Root(Sub(b, a)) = %v want %v", Root(got), rootB)
	}
}

func TestWithData(t *testing.T) {
	root := New("fail")
	err := WithData(root, "key", "value")
	if got := Data(err)["key"]; got != "value" {
		t.Errorf(`Data(err)["key"] = %v want "value"`, got)
	}
	if got := Root(err); got != root {
		t.Errorf("got root %v want %v", got, root)
	}
}
