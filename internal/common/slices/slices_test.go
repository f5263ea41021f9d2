package slices

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	toString := func(val int) string { return fmt.Sprintf("%d", val) }
	input := []int{1, 3, 5, 7, 9}
	expectedOutput := []string{"1", "3", "5", "7", "9"}

	output := Map(input, toString)
	assert.Equal(t, expectedOutput, output)
}

func TestMapEmptyList(t *testing.T) {
	toString := func(val int) string { return fmt.Sprintf("%d", val) }
	input := []int{}
	expectedOutput := []string{}

	output := Map(input, toString)
	assert.Equal(t, expectedOutput, output)
}

func TestFilter(t *testing.T) {
	isEven := func(val int) bool { return val%2 == 0 }
	assert.Equal(t, []int{2, 4}, Filter([]int{1, 2, 3, 4, 5}, isEven))
	assert.Equal(t, []int{}, Filter([]int{1, 3}, isEven))
	assert.Nil(t, Filter[[]int](nil, isEven))
}

func TestFilter_NilPointers(t *testing.T) {
	a, b := "a", "b"
	input := []*string{&a, nil, &b, nil}
	output := Filter(input, func(s *string) bool { return s != nil })
	assert.Equal(t, []*string{&a, &b}, output)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Unique([]int{1, 2, 1, 3, 2}))
	assert.Nil(t, Unique[[]int](nil))
}

func TestGroupByFunc(t *testing.T) {
	groups := GroupByFunc([]string{"linux-64", "linux-arm", "rhel80"}, func(s string) string { return s[:5] })
	assert.Equal(t, map[string][]string{
		"linux": {"linux-64", "linux-arm"},
		"rhel8": {"rhel80"},
	}, groups)
}
