package genotype

// Missing is the allele written in place of an absent or unreadable one.
const Missing = 'N'

// MissingCall is the normalized form of an empty or unsupported call.
const MissingCall = "NN"

// alphabet marks the bytes accepted at either end of a call: the alleles
// proper, and the markers some exports use for a missing allele.
var alphabet = func() (a [256]bool) {
	for _, c := range []byte("ACGTN+-?0") {
		a[c] = true
	}
	return
}()

func isMissingMarker(c byte) bool { return c == '?' || c == '0' }

// NormalizeCall returns the two-letter form of call. ok is false if call is
// unsupported, in which case MissingCall is returned.
func NormalizeCall(call string) (norm string, ok bool) {
	n := len(call)
	if n == 0 {
		return MissingCall, true
	}
	a, b := call[0], call[n-1]
	if !alphabet[a] || !alphabet[b] {
		return MissingCall, false
	}
	if isMissingMarker(a) {
		a = Missing
	}
	if isMissingMarker(b) {
		b = Missing
	}
	return string([]byte{a, b}), true
}
