package domain

import "regexp"

var (
	// 11 digit mobile numbers on the 010, 011, 012 and 015 networks
	phonePattern = regexp.MustCompile(`^(010|011|012|015)\d{8}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsValidPhone reports whether phone is an accepted Egyptian mobile number
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// IsValidEmail performs the shape check used by checkout, contact and settings forms
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
