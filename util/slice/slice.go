package slice

func FindPos(s []string, v string) int {
	for i, sv := range s {
		if sv == v {
			return i
		}
	}
	return -1
}

// Insert puts vs at pos. A pos past the end appends.
func Insert(s []string, pos int, vs ...string) []string {
	if pos >= len(s) {
		return append(s, vs...)
	}
	if pos < 0 {
		pos = 0
	}
	res := make([]string, 0, len(s)+len(vs))
	res = append(res, s[:pos]...)
	res = append(res, vs...)
	return append(res, s[pos:]...)
}

func Remove(s []string, v string) []string {
	var n int
	for _, x := range s {
		if x != v {
			s[n] = x
			n++
		}
	}
	return s[:n]
}

func Filter[T any](vals []T, cond func(T) bool) []T {
	var result = make([]T, 0, len(vals))
	for _, v := range vals {
		if cond(v) {
			result = append(result, v)
		}
	}
	return result
}
