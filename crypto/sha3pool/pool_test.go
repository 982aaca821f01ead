package sha3pool

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/sha3"
)

func TestSum256MatchesSha3(t *testing.T) {
	data := [][]byte{nil, []byte("a"), []byte("token transfer"), bytes.Repeat([]byte{0xff}, 600)}
	for _, d := range data {
		var got [32]byte
		Sum256(got[:], d)
		if want := sha3.Sum256(d); got != want {
			t.Errorf("Sum256(%x) = %x want %x", d, got, want)
		}
	}
}

func TestSum256Concat(t *testing.T) {
	var split, whole [32]byte
	Sum256(split[:], []byte("owner"), []byte("hash"))
	Sum256(whole[:], []byte("ownerhash"))
	if split != whole {
		t.Errorf("concatenated writes %x differ from single write %x", split, whole)
	}
}

func TestPoolReuse(t *testing.T) {
	h := Get256()
	h.Write([]byte("stale state"))
	Put256(h)

	var got [32]byte
	Sum256(got[:], []byte("abc"))
	if want := sha3.Sum256([]byte("abc")); got != want {
		t.Errorf("pooled hash kept stale state: got %x want %x", got, want)
	}
}
