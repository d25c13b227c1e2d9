package domain

// NormalizeCPF strips everything but digits from a CPF and validates it:
// exactly 11 digits, not all identical, and both check digits correct.
// The check digits are weighted sums mod 11 over the preceding digits
// (weights 10..2 for the first, 11..2 for the second).
func NormalizeCPF(raw string) (string, error) {
	digits := make([]byte, 0, 11)
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) != 11 {
		return "", ErrInvalidCPF
	}

	same := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			same = false
			break
		}
	}
	if same {
		return "", ErrInvalidCPF
	}

	if cpfCheckDigit(digits, 9) != int(digits[9]-'0') ||
		cpfCheckDigit(digits, 10) != int(digits[10]-'0') {
		return "", ErrInvalidCPF
	}

	return string(digits), nil
}

// cpfCheckDigit computes the check digit over digits[0:n] with weights
// n+1 down to 2. A remainder below 2 yields digit 0.
func cpfCheckDigit(digits []byte, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
