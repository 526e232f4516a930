package utils

// ValidateZip checks if a string is a valid 5-digit US ZIP code.
func ValidateZip(zip string) bool {
	if len(zip) != 5 {
		return false
	}

	// Check if all characters are digits
	for _, char := range zip {
		if char < '0' || char > '9' {
			return false
		}
	}

	return true
}
