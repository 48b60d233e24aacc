package threads

// Label returns the text printed on the chart for the thread created at the
// given zero-based index.
//
// Index 0 is "A". Otherwise letters are collected least significant first
// from index%26 with index divided by 26 each step, and then reversed.
// Because a leading zero digit is never emitted, two-letter labels run
// "BA".."ZZ" and "AA" never occurs.
func Label(index int) string {
	if index <= 0 {
		return "A"
	}

	var letters []byte
	for index > 0 {
		letters = append(letters, byte('A'+index%26))
		index /= 26
	}

	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}

	return string(letters)
}
