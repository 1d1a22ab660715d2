package bench

import "math/rand/v2"

// MergeSort returns a sorted copy of a using a bottom-up iterative merge.
func MergeSort(a []int) []int {
	n := len(a)
	src := make([]int, n)
	copy(src, a)
	if n <= 1 {
		return src
	}
	dst := make([]int, n)

	for width := 1; width < n; width *= 2 {
		for left := 0; left < n; left += 2 * width {
			mid := min(left+width, n)
			right := min(left+2*width, n)
			merge(src, dst, left, mid, right)
		}
		src, dst = dst, src
	}

	return src
}

// merge combines src[left:mid] and src[mid:right] into dst[left:right].
func merge(src, dst []int, left, mid, right int) {
	i, j, k := left, mid, left
	for i < mid && j < right {
		if src[i] <= src[j] {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < right {
		dst[k] = src[j]
		j++
		k++
	}
}

// QuickSort returns a sorted copy of a using randomized 3-way partitioning.
// Recursion always takes the smaller partition, keeping the stack
// logarithmic even on duplicate-heavy input.
func QuickSort(a []int) []int {
	out := make([]int, len(a))
	copy(out, a)
	quickSort3Way(out, 0, len(out)-1)
	return out
}

func quickSort3Way(a []int, lo, hi int) {
	for lo < hi {
		pivot := a[lo+rand.IntN(hi-lo+1)]

		// 3-way partition: < pivot | == pivot | > pivot
		lt, i, gt := lo, lo, hi
		for i <= gt {
			switch {
			case a[i] < pivot:
				a[lt], a[i] = a[i], a[lt]
				lt++
				i++
			case a[i] > pivot:
				a[i], a[gt] = a[gt], a[i]
				gt--
			default:
				i++
			}
		}

		if lt-lo < hi-gt {
			quickSort3Way(a, lo, lt-1)
			lo = gt + 1
		} else {
			quickSort3Way(a, gt+1, hi)
			hi = lt - 1
		}
	}
}
