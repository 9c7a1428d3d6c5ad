package service

import "unicode"

const minPasswordLength = 10

// weakPassword reports passwords shorter than ten characters or containing
// anything other than letters and numbers. Numbers include superscripts,
// fractions and other non-decimal numerals.
func weakPassword(password string) bool {
	if len([]rune(password)) < minPasswordLength {
		return true
	}
	for _, r := range password {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
