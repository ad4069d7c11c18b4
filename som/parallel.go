package som

import "sync"

// forEachRange splits [0, length) into at most workers contiguous
// chunks and runs body on each chunk concurrently, returning once every
// chunk has finished. With a single worker it degrades to a plain call.
func forEachRange(length, workers int, body func(lo, hi int)) {
	if workers <= 1 || length <= 1 {
		body(0, length)
		return
	}

	chunk := (length + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < length; lo += chunk {
		hi := lo + chunk
		if hi > length {
			hi = length
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			body(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
