// Package taskname holds the naming conventions for generated Evergreen tasks.
package taskname

import (
	"fmt"
	"strconv"
	"strings"
)

const genSuffix = "_gen"

// NameGeneratedTask returns the name of the sub-task at index out of total sub-tasks generated from parent.
// The index is zero-padded to the number of digits needed for total, so names sort in index order.
func NameGeneratedTask(parent string, index, total int, variant string) string {
	// ceil(log10(total)), computed on integers to avoid rounding at powers of ten.
	width := 0
	if total > 1 {
		width = len(strconv.Itoa(total - 1))
	}
	return withVariant(fmt.Sprintf("%s_%0*d", parent, width, index), variant)
}

// RemoveGenSuffix strips the suffix carried by generator task names, e.g. "jstestfuzz_gen" -> "jstestfuzz".
func RemoveGenSuffix(name string) string {
	return strings.TrimSuffix(name, genSuffix)
}

// GenTaskName is the inverse of RemoveGenSuffix.
func GenTaskName(name string) string {
	return name + genSuffix
}

func withVariant(name, variant string) string {
	if variant == "" {
		return name
	}
	return name + "_" + variant
}
