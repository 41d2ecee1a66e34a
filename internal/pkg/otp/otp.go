package otp

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"strconv"
)

// DefaultDigits is the length of codes mailed for email verification.
const DefaultDigits = 5

// ErrInvalidDigits is returned for a digit count outside [4, 10].
var ErrInvalidDigits = errors.New("otp digits must be between 4 and 10")

// Generator produces one-time codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric generates fixed-length decimal codes.
type Numeric struct {
	min    *big.Int
	span   *big.Int
	reader io.Reader
}

// NewNumeric returns a generator of codes with exactly digits digits.
func NewNumeric(digits int) (*Numeric, error) {
	if digits < 4 || digits > 10 {
		return nil, ErrInvalidDigits
	}

	lo := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits-1)), nil)
	hi := new(big.Int).Mul(lo, big.NewInt(10))

	return &Numeric{
		min:    lo,
		span:   new(big.Int).Sub(hi, lo),
		reader: rand.Reader,
	}, nil
}

// Generate returns a uniformly distributed code.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(n.reader, n.span)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(v.Add(v, n.min).Int64(), 10), nil
}
