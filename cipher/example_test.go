package cipher_test

import (
	"fmt"

	"github.com/katalvlaran/mirrorfield/bank"
	"github.com/katalvlaran/mirrorfield/cipher"
)

// ExampleSession encrypts with one copy of a key and decrypts with another.
func ExampleSession() {
	const def = "/\\- ABCDEFGH"

	enc, _ := bank.Parse([]byte(def), 2, 1)
	dec, _ := bank.Parse([]byte(def), 2, 1)
	alice, _ := cipher.NewSession(enc)
	bob, _ := cipher.NewSession(dec)

	ct, _ := alice.ProcessBytes([]byte("DEADBEEFCAFE"))
	pt, _ := bob.ProcessBytes(ct)
	fmt.Println(string(ct))
	fmt.Println(string(pt))
	// Output:
	// HFHAAHHEFEBA
	// DEADBEEFCAFE
}
