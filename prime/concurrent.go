package prime

import (
	"crypto/rand"
	"runtime"

	"github.com/phe-go/phe/big"
)

// GenerateConcurrent concurrently and continuously generates probable primes
// on all CPU cores, until the stop channel receives a struct or is closed.
// If an error is encountered, generation is stopped in all goroutines, and
// the error is sent on the second return parameter.
func GenerateConcurrent(bitLength, certainty int, stop chan struct{}) (<-chan *big.Int, <-chan error) {
	count := runtime.GOMAXPROCS(0)
	ints := make(chan *big.Int, count)
	errs := make(chan error, count)

	// In order to succesfully close all goroutines below when the caller wants them to, they require
	// a channel that is close()d: just sending a struct{}{} would stop one but not all goroutines.
	// Instead of requiring the caller to close() the stop chan parameter we use our own chan for
	// this, so that we always stop all goroutines independent of whether the caller close()s stop
	// or sends a struct{}{} to it.
	stopped := make(chan struct{})
	go func() {
		select {
		case <-stop:
			close(stopped)
		case <-stopped: // stopped can also be closed by a goroutine that encountered an error
		}
	}()

	for i := 0; i < count; i++ {
		go func() {
			for {
				x, err := Generate(rand.Reader, bitLength, certainty)
				if err != nil {
					errs <- err
					close(stopped)
					return
				}

				// Only send the result and continue generating if we have not been told to stop
				select {
				case <-stopped:
					return
				case ints <- x:
					continue
				}
			}
		}()
	}

	return ints, errs
}
