package uid

// ToDigits converts buf, read as a big-endian unsigned integer, into its
// digits in the given base. The result is least-significant digit first and
// always has at least one digit.
//
// Each input byte multiplies the running value by 256 and adds the byte,
// carrying through the digit array. No big integer type is needed.
func ToDigits(buf []byte, base int) []int {
	digits := []int{0}
	for _, b := range buf {
		carry := int(b)
		for j := range digits {
			carry += digits[j] << 8
			digits[j] = carry % base
			carry /= base
		}
		for carry > 0 {
			digits = append(digits, carry%base)
			carry /= base
		}
	}
	return digits
}
