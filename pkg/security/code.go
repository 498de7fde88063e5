package security

import (
	"crypto/rand"
	"fmt"
)

// Ambiguous glyphs (0/O, 1/I) are excluded so codes survive whiteboards.
var checkinCodeCharset = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

// CheckinCodeLength is the fixed length for event check-in codes.
const CheckinCodeLength = 6

// GenerateCheckinCode returns a random uppercase code for event check-in.
func GenerateCheckinCode() (string, error) {
	result := make([]rune, CheckinCodeLength)
	for i := range result {
		idx, err := randInt(len(checkinCodeCharset))
		if err != nil {
			return "", err
		}
		result[i] = checkinCodeCharset[idx]
	}
	return string(result), nil
}

func randInt(max int) (int, error) {
	if max <= 0 {
		return 0, fmt.Errorf("invalid max %d", max)
	}
	var buff = make([]byte, 1)
	if _, err := rand.Read(buff); err != nil {
		return 0, err
	}
	return int(buff[0]) % max, nil
}
