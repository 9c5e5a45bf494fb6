package perm

// Sort sorts t ascending in place and returns the sign of the permutation
// that was applied: +1 for even, -1 for odd. It returns 0 when t contains a
// repeated element, in which case t cannot name a basis.
func Sort(t []uint8) int {
	switch len(t) {
	case 0, 1:
		return 1
	case 2:
		return sort2(t)
	case 3:
		return sort3(t)
	}
	return sortSelection(t)
}

func sort2(t []uint8) int {
	switch {
	case t[0] < t[1]:
		return 1
	case t[0] > t[1]:
		t[0], t[1] = t[1], t[0]
		return -1
	}
	return 0
}

// sort3 is a three comparator network; each exchange is one transposition.
func sort3(t []uint8) int {
	s := 1
	if t[0] > t[1] {
		t[0], t[1] = t[1], t[0]
		s = -s
	}
	if t[1] > t[2] {
		t[1], t[2] = t[2], t[1]
		s = -s
	}
	if t[0] > t[1] {
		t[0], t[1] = t[1], t[0]
		s = -s
	}
	if t[0] == t[1] || t[1] == t[2] {
		return 0
	}
	return s
}

func sortSelection(t []uint8) int {
	s := 1
	for i := 0; i < len(t)-1; i++ {
		m := i
		for j := i + 1; j < len(t); j++ {
			if t[j] < t[m] {
				m = j
			}
		}
		if m != i {
			t[i], t[m] = t[m], t[i]
			s = -s
		}
	}
	for i := 1; i < len(t); i++ {
		if t[i-1] == t[i] {
			return 0
		}
	}
	return s
}
