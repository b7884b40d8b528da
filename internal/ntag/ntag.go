// Package ntag verifies NTAG424 DNA SUN messages produced by bolt card taps.
//
// A tap yields a 16-byte encrypted PICC blob and an 8-byte truncated CMAC.
// The blob decrypts (AES-128-CBC, zero IV) to a tag byte, the 7-byte card UID
// and a 24-bit little-endian tap counter. The CMAC is computed over the SV2
// session vector with a key derived from the card's cmac key, so a successful
// verification proves the tap came from a card holding both keys.
package ntag

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"fmt"

	"github.com/aead/cmac"
)

const (
	// PiccDataLength is the fixed size of the encrypted PICC blob.
	PiccDataLength = 16

	// CmacLength is the truncated tag length sent by the card.
	CmacLength = 8

	// UIDLength is the NTAG424 chip UID size.
	UIDLength = 7

	piccDataTag = 0xC7
)

// KeySet holds the two symmetric keys written to a card when it is linked.
type KeySet struct {
	PiccDataKey []byte // decrypts the PICC blob
	CmacKey     []byte // verifies the authentication tag
}

// PiccData is the authenticated content of one tap. Valid only when
// ExtractPiccData returned it without error.
type PiccData struct {
	UID     [UIDLength]byte
	Counter uint32
}

// ExtractPiccData decrypts the PICC blob with the key set and verifies the
// supplied CMAC. It is a pure function: same inputs, same result, no I/O.
func ExtractPiccData(keys KeySet, piccData, mac []byte) (*PiccData, error) {
	if len(piccData) != PiccDataLength {
		return nil, fmt.Errorf("picc data must be %d bytes, got %d", PiccDataLength, len(piccData))
	}
	if len(mac) != CmacLength {
		return nil, fmt.Errorf("cmac must be %d bytes, got %d", CmacLength, len(mac))
	}

	block, err := aes.NewCipher(keys.PiccDataKey)
	if err != nil {
		return nil, fmt.Errorf("invalid picc data key: %w", err)
	}

	plain := make([]byte, PiccDataLength)
	iv := make([]byte, aes.BlockSize)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, piccData)

	if plain[0] != piccDataTag {
		return nil, fmt.Errorf("unexpected picc data tag 0x%02X", plain[0])
	}

	var info PiccData
	copy(info.UID[:], plain[1:8])
	counterBytes := plain[8:11] // little-endian 24-bit
	info.Counter = uint32(counterBytes[0]) | uint32(counterBytes[1])<<8 | uint32(counterBytes[2])<<16

	expected, err := computeCmac(keys.CmacKey, info.UID, counterBytes)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(expected, mac) != 1 {
		return nil, fmt.Errorf("cmac mismatch")
	}

	return &info, nil
}

// computeCmac derives the SV2 session key and returns the truncated tag the
// card is expected to have produced for this UID and counter.
func computeCmac(cmacKey []byte, uid [UIDLength]byte, counter []byte) ([]byte, error) {
	block, err := aes.NewCipher(cmacKey)
	if err != nil {
		return nil, fmt.Errorf("invalid cmac key: %w", err)
	}

	sv2 := make([]byte, 0, 16)
	sv2 = append(sv2, 0x3C, 0xC3, 0x00, 0x01, 0x00, 0x80)
	sv2 = append(sv2, uid[:]...)
	sv2 = append(sv2, counter...)

	sessionKey, err := cmac.Sum(sv2, block, block.BlockSize())
	if err != nil {
		return nil, fmt.Errorf("session key derivation: %w", err)
	}

	sessionBlock, err := aes.NewCipher(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("invalid session key: %w", err)
	}

	full, err := cmac.Sum(nil, sessionBlock, sessionBlock.BlockSize())
	if err != nil {
		return nil, fmt.Errorf("tag computation: %w", err)
	}

	// The card transmits only the odd-indexed bytes of the full tag.
	truncated := make([]byte, CmacLength)
	for i := range truncated {
		truncated[i] = full[i*2+1]
	}
	return truncated, nil
}
