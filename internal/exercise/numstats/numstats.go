// Package numstats bundles the chapter 8 slices-and-maps drill: summary
// statistics over a list of integers. Mean and median come back as
// float64 because halves matter; mode stays an int.
package numstats

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrNoData reports an empty input list. Every statistic here is
// undefined over zero numbers.
var ErrNoData = errors.New("no numbers given")

// Summary holds every statistic the drill computes in one pass.
type Summary struct {
	Count  int
	Min    int
	Max    int
	Mean   float64
	Median float64
	Mode   int
}

// Mean returns the arithmetic mean. The sum stays in int, so the
// result is exact up to the final division.
func Mean(nums []int) (float64, error) {
	if len(nums) == 0 {
		return 0, ErrNoData
	}
	sum := 0
	for _, n := range nums {
		sum += n
	}
	return float64(sum) / float64(len(nums)), nil
}

// Median returns the middle value, averaging the middle pair when the
// count is even. The input slice is not modified.
func Median(nums []int) (float64, error) {
	if len(nums) == 0 {
		return 0, ErrNoData
	}
	sorted := make([]int, len(nums))
	copy(sorted, nums)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid]), nil
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2, nil
}

// Mode returns the most frequent value. Ties break toward the smallest
// value so the answer is deterministic.
func Mode(nums []int) (int, error) {
	if len(nums) == 0 {
		return 0, ErrNoData
	}
	counts := make(map[int]int, len(nums))
	for _, n := range nums {
		counts[n]++
	}

	mode, best := 0, 0
	for n, c := range counts {
		if c > best || (c == best && n < mode) {
			mode, best = n, c
		}
	}
	return mode, nil
}

// Summarize computes every statistic over one input list.
func Summarize(nums []int) (Summary, error) {
	if len(nums) == 0 {
		return Summary{}, ErrNoData
	}

	s := Summary{Count: len(nums), Min: nums[0], Max: nums[0]}
	for _, n := range nums {
		if n < s.Min {
			s.Min = n
		}
		if n > s.Max {
			s.Max = n
		}
	}

	var err error
	if s.Mean, err = Mean(nums); err != nil {
		return Summary{}, err
	}
	if s.Median, err = Median(nums); err != nil {
		return Summary{}, err
	}
	if s.Mode, err = Mode(nums); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// ParseInts converts command-line arguments into the input list.
func ParseInts(args []string) ([]int, error) {
	nums := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("not a whole number: %q", arg)
		}
		nums = append(nums, n)
	}
	return nums, nil
}
