package testutil

import (
	"crypto/ed25519"
)

var (
	TestPub ed25519.PublicKey
	TestPrv ed25519.PrivateKey
)

type zeroReader struct{}

func (z zeroReader) Read(buf []byte) (int, error) {
	for i := range buf {
		buf[i] = 0
	}
	return len(buf), nil
}

func init() {
	var err error
	TestPub, TestPrv, err = ed25519.GenerateKey(zeroReader{})
	if err != nil {
		panic(err)
	}
}
