package crypto

import (
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// Sha256 returns the SHA3-256 digest of the concatenation of data.
func Sha256(data ...[]byte) []byte {
	d := sha3.New256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Ripemd160 returns the RIPEMD-160 digest of data.
func Ripemd160(data []byte) []byte {
	ripemd := ripemd160.New()
	ripemd.Write(data)

	return ripemd.Sum(nil)
}

// Hash160 returns Ripemd160(Sha256(data)), the 20-byte fingerprint
// form used to lock outputs to a public key.
func Hash160(data []byte) []byte {
	return Ripemd160(Sha256(data))
}
