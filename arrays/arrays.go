// Package arrays implements the integer-slice algorithms served behind
// authentication. Every function treats its input as read-only.
package arrays

import (
	"errors"
	"slices"

	"github.com/kbukum/arraygate/util"
)

// ErrEmptyInput is returned by Max for an empty slice.
var ErrEmptyInput = errors.New("arrays: empty input")

// BubbleSort returns a copy of nums in non-decreasing order. It stops early
// once a pass makes no swaps.
func BubbleSort(nums []int) []int {
	out := make([]int, len(nums))
	copy(out, nums)

	for n := len(out); n > 1; n-- {
		swapped := false
		for i := 1; i < n; i++ {
			if out[i-1] > out[i] {
				out[i-1], out[i] = out[i], out[i-1]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return out
}

// FilterEven returns the even elements of nums in their original order.
// The result is never nil.
func FilterEven(nums []int) []int {
	return util.Filter(nums, func(n int) bool { return n%2 == 0 })
}

// Sum returns the sum of nums, 0 for an empty slice.
func Sum(nums []int) int {
	total := 0
	for _, n := range nums {
		total += n
	}
	return total
}

// Max returns the largest element of nums.
func Max(nums []int) (int, error) {
	if len(nums) == 0 {
		return 0, ErrEmptyInput
	}
	m := nums[0]
	for _, n := range nums[1:] {
		if n > m {
			m = n
		}
	}
	return m, nil
}

// BinarySearch looks for target in nums, which must be sorted ascending.
// It returns the index of the first occurrence, or (-1, false). Unsorted
// input yields an unspecified but safe result.
func BinarySearch(nums []int, target int) (int, bool) {
	if i, found := slices.BinarySearch(nums, target); found {
		return i, true
	}
	return -1, false
}
