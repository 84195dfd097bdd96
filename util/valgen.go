// Some helpers using closures to generate values and AD source lines
package valgen

import (
	"fmt"
	"math/rand"
	"strings"
)

func MakeConstGen(constant int64) func() int64 {
	return func() int64 {
		return constant
	}
}

func MakeIncreasingGen(start int) func() int {
	current := start
	return func() int {
		current++
		return current
	}
}

// MakeRangeGen draws from [lo, hi].
func MakeRangeGen(r *rand.Rand, lo, hi int64) func() int64 {
	return func() int64 {
		return lo + r.Int63n(hi-lo+1)
	}
}

// MakePickGen draws one of choices.
func MakePickGen(r *rand.Rand, choices []string) func() string {
	return func() string {
		return choices[r.Intn(len(choices))]
	}
}

// MakeLineGen draws AD instructions over the given registers and labels.
// Jumps and checks only target the given labels.
func MakeLineGen(r *rand.Rand, registers, labels []string) func() string {
	reg := MakePickGen(r, registers)
	small := MakeRangeGen(r, -20, 20)
	op := MakePickGen(r, []string{"==", "!=", ">", "<"})
	label := MakePickGen(r, labels)

	return func() string {
		switch r.Intn(7) {
		case 0:
			return fmt.Sprintf("set %s %d", reg(), small())
		case 1:
			return fmt.Sprintf("add %s %s", reg(), reg())
		case 2:
			return fmt.Sprintf("sub %s %d", reg(), small())
		case 3:
			return fmt.Sprintf("check %s %s %d then > %s", reg(), op(), small(), label())
		case 4:
			return fmt.Sprintf("> %s", label())
		case 5:
			return fmt.Sprintf("show %s", reg())
		default:
			return fmt.Sprintf("add %s %d", reg(), small())
		}
	}
}

// MakeProgramGen draws whole programs of up to maxLines instructions,
// each defining every label once at a random position.
func MakeProgramGen(r *rand.Rand, registers []string, numLabels, maxLines int) func() string {
	next := MakeIncreasingGen(-1)

	return func() string {
		labels := make([]string, numLabels)
		for i := range labels {
			labels[i] = fmt.Sprintf("l%d", next())
		}

		line := MakeLineGen(r, registers, labels)

		n := 1 + r.Intn(maxLines)
		lines := make([]string, 0, n+numLabels)
		for i := 0; i < n; i++ {
			lines = append(lines, line())
		}

		for _, l := range labels {
			pos := r.Intn(len(lines) + 1)
			lines = append(lines[:pos], append([]string{"(" + l + ")"}, lines[pos:]...)...)
		}

		return strings.Join(lines, "\n")
	}
}
