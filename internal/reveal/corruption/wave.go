package corruption

import "strings"

// Wave renders the corruption wave after replaceIndex ticks. Every position
// left of replaceIndex shows replacement[i mod M]; the rest shows the source.
// Once replaceIndex passes the end of source the wave keeps writing past it.
func Wave(source, replacement []rune, replaceIndex int) string {
	n, m := len(source), len(replacement)
	if m == 0 || replaceIndex <= 0 {
		return string(source)
	}

	var b strings.Builder
	b.Grow((max(n, replaceIndex)) * 3)
	for i := 0; i < n; i++ {
		if i < replaceIndex {
			b.WriteRune(replacement[i%m])
		} else {
			b.WriteRune(source[i])
		}
	}
	for k := 0; n+k < replaceIndex; k++ {
		b.WriteRune(replacement[(n+k)%m])
	}
	return b.String()
}
