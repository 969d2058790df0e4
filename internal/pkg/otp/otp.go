package otp

// CodeLength is the fixed length of every generated code.
const CodeLength = 6

// FromPhone derives the one-time code from a phone number: the last six
// digits, left-padded with zeros when the number is shorter.
func FromPhone(phone string) string {
	if len(phone) >= CodeLength {
		return phone[len(phone)-CodeLength:]
	}
	padded := make([]byte, CodeLength)
	for i := range padded {
		padded[i] = '0'
	}
	copy(padded[CodeLength-len(phone):], phone)
	return string(padded)
}
