package inventory

// dammTable is the weakly totally anti-symmetric quasigroup used by the Damm
// algorithm, indexed [digit][interim].
var dammTable = [10][10]int{
	{0, 7, 4, 1, 6, 3, 5, 8, 9, 2},
	{3, 0, 2, 7, 1, 6, 8, 9, 4, 5},
	{1, 9, 0, 5, 2, 7, 6, 4, 3, 8},
	{7, 2, 6, 0, 3, 4, 9, 5, 8, 1},
	{5, 1, 8, 9, 0, 2, 7, 3, 6, 4},
	{9, 5, 7, 8, 4, 0, 2, 6, 1, 3},
	{8, 4, 1, 3, 5, 9, 0, 2, 7, 6},
	{6, 8, 3, 4, 9, 5, 1, 0, 2, 7},
	{4, 6, 5, 2, 7, 8, 3, 1, 0, 9},
	{2, 3, 9, 6, 8, 1, 4, 7, 5, 0},
}

// CheckDigit returns the Damm check digit of s, or -1 when s is empty or
// holds anything other than ASCII digits.
func CheckDigit(s string) int {
	if !IsDigitString(s) {
		return -1
	}
	interim := 0
	for i := 0; i < len(s); i++ {
		interim = dammTable[s[i]-'0'][interim]
	}
	return interim
}

// HasValidCheckDigit reports whether the last digit of barcode checks the rest.
// Running the algorithm over body+check yields zero exactly when it does.
func HasValidCheckDigit(barcode string) bool {
	return len(barcode) > 1 && CheckDigit(barcode) == 0
}

// IsDigitString reports whether s is a non-empty run of ASCII digits
func IsDigitString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
