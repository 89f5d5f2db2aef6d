package common

import (
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrEmpty     = errors.New("empty hex string")
	ErrOddLength = errors.New("hex string of odd length")
	ErrSyntax    = errors.New("invalid hex string")
)

// Hex2Bytes returns the bytes represented by the hexadecimal string str.
func Hex2Bytes(str string) []byte {
	h, _ := hex.DecodeString(str)
	return h
}

// Bytes2Hex returns the hexadecimal encoding of d.
func Bytes2Hex(d []byte) string {
	return hex.EncodeToString(d)
}

// ParseHex strictly decodes bytecode text. The "0x"/"0X" prefix is optional
// and digits are case-insensitive; surrounding whitespace is ignored.
func ParseHex(s string) ([]byte, error) {
	s = trimHexPrefix(strings.TrimSpace(s))
	if len(s) == 0 {
		return nil, ErrEmpty
	}
	if len(s)%2 == 1 {
		return nil, ErrOddLength
	}
	for i := 0; i < len(s); i++ {
		if !isHexCharacter(s[i]) {
			return nil, ErrSyntax
		}
	}
	return hex.DecodeString(s)
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
