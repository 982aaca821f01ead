package blockchain

import (
	"bytes"
	"io"
	"math"
	"testing"
)

func TestVarint31(t *testing.T) {
	cases := []struct {
		n       uint64
		want    []byte
		wantErr error
	}{
		{0, []byte{0x00}, nil},
		{1, []byte{0x01}, nil},
		{127, []byte{0x7f}, nil},
		{128, []byte{0x80, 0x01}, nil},
		{546, []byte{0xa2, 0x04}, nil},
		{math.MaxInt32, []byte{0xff, 0xff, 0xff, 0xff, 0x07}, nil},
		{math.MaxInt32 + 1, nil, ErrRange},
	}

	for _, c := range cases {
		b := new(bytes.Buffer)
		n, err := WriteVarint31(b, c.n)
		if err != c.wantErr {
			t.Errorf("WriteVarint31(%d) err = %v want %v", c.n, err, c.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if n != len(c.want) || !bytes.Equal(b.Bytes(), c.want) {
			t.Errorf("WriteVarint31(%d) wrote %x want %x", c.n, b.Bytes(), c.want)
		}

		got, err := ReadVarint31(NewReader(b.Bytes()))
		if err != nil {
			t.Errorf("ReadVarint31(%x) err = %v", b.Bytes(), err)
		}
		if uint64(got) != c.n {
			t.Errorf("ReadVarint31(%x) = %d want %d", b.Bytes(), got, c.n)
		}
	}
}

func TestVarint63(t *testing.T) {
	cases := []struct {
		n       uint64
		wantErr error
	}{
		{0, nil},
		{546, nil},
		{math.MaxInt64, nil},
		{math.MaxInt64 + 1, ErrRange},
	}

	for _, c := range cases {
		b := new(bytes.Buffer)
		_, err := WriteVarint63(b, c.n)
		if err != c.wantErr {
			t.Errorf("WriteVarint63(%d) err = %v want %v", c.n, err, c.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		got, err := ReadVarint63(NewReader(b.Bytes()))
		if err != nil {
			t.Errorf("ReadVarint63(%x) err = %v", b.Bytes(), err)
		}
		if got != c.n {
			t.Errorf("ReadVarint63(%x) = %d want %d", b.Bytes(), got, c.n)
		}
	}
}

func TestReadVarint63Range(t *testing.T) {
	// 2^63 encoded as LEB128
	overflow := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	if _, err := ReadVarint63(NewReader(overflow)); err != ErrRange {
		t.Errorf("ReadVarint63(2^63) err = %v want %v", err, ErrRange)
	}
}

func TestVarstr31(t *testing.T) {
	b := new(bytes.Buffer)
	str := []byte{0x76, 0xa9, 0x14}
	n, err := WriteVarstr31(b, str)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x03, 0x76, 0xa9, 0x14}; n != len(want) || !bytes.Equal(b.Bytes(), want) {
		t.Errorf("WriteVarstr31(%x) wrote %x want %x", str, b.Bytes(), want)
	}

	got, err := ReadVarstr31(NewReader(b.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, str) {
		t.Errorf("ReadVarstr31 = %x want %x", got, str)
	}
}

func TestVarstr31Empty(t *testing.T) {
	b := new(bytes.Buffer)
	if _, err := WriteVarstr31(b, nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b.Bytes(), []byte{0x00}) {
		t.Errorf("WriteVarstr31(nil) wrote %x want 00", b.Bytes())
	}
	got, err := ReadVarstr31(NewReader(b.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("ReadVarstr31(00) = %x want nil", got)
	}
}

func TestVarstr31Truncated(t *testing.T) {
	// declares 5 bytes, supplies 2
	if _, err := ReadVarstr31(NewReader([]byte{0x05, 0xde, 0xad})); err != io.ErrUnexpectedEOF {
		t.Errorf("truncated varstr err = %v want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestVarstrList(t *testing.T) {
	list := [][]byte{{0x01}, {0x02, 0x03}, nil}
	b := new(bytes.Buffer)
	if _, err := WriteVarstrList(b, list); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x03, 0x01, 0x01, 0x02, 0x02, 0x03, 0x00}
	if !bytes.Equal(b.Bytes(), want) {
		t.Errorf("WriteVarstrList wrote %x want %x", b.Bytes(), want)
	}
}

func TestReaderLen(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if r.Len() != 3 {
		t.Fatalf("Len = %d want 3", r.Len())
	}
	if b, err := r.ReadByte(); err != nil || b != 1 {
		t.Fatalf("ReadByte = %d, %v", b, err)
	}
	if r.Len() != 2 {
		t.Errorf("Len after read = %d want 2", r.Len())
	}
}
