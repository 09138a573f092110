package grading

// optionLabels maps an option's zero-based position to its label.
var optionLabels = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
}

var labelIndex = func() map[string]int {
	m := make(map[string]int, len(optionLabels))
	for i, l := range optionLabels {
		m[l] = i
	}
	return m
}()

// Label returns the label of the option at index i.
func Label(i int) (string, bool) {
	if i < 0 || i >= len(optionLabels) {
		return "", false
	}
	return optionLabels[i], true
}

// Index returns the option position a label refers to.
func Index(label string) (int, bool) {
	i, ok := labelIndex[label]
	return i, ok
}

// Labels returns the labels for n options.
func Labels(n int) []string {
	n = min(max(n, 0), len(optionLabels))
	out := make([]string, n)
	copy(out, optionLabels[:n])
	return out
}
