// Package entropy provides the strong-randomness sources used by key and
// nonce generation, along with the background progress indicator shown
// while entropy is being collected (§4.I).
//
// The only cross-thread state is a single atomic "done" flag (§9: the
// source's plain shared int is rewritten here as a sync/atomic bool with
// release/acquire semantics), set by the foreground once the random draw
// completes and observed by the indicator goroutine so it can exit
// cooperatively.
package entropy

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tstruk/spg/bignum"
)

// Orchestrator drives the progress indicator around a strong-randomness
// draw. The zero value is ready to use.
type Orchestrator struct {
	Out io.Writer // defaults to no output when nil

	done atomic.Bool
	wg   sync.WaitGroup
}

// Begin prints a message and starts a goroutine that emits one dot per
// second until End is called.
func (o *Orchestrator) Begin(message string) {
	o.done.Store(false)
	if o.Out != nil {
		fmt.Fprintln(o.Out, message)
	}
	o.wg.Add(1)
	go o.indicate()
}

func (o *Orchestrator) indicate() {
	defer o.wg.Done()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for !o.done.Load() {
		<-ticker.C
		if o.done.Load() {
			return
		}
		if o.Out != nil {
			fmt.Fprint(o.Out, ".")
		}
	}
}

// End signals completion and waits for the indicator goroutine to exit.
func (o *Orchestrator) End() {
	o.done.Store(true)
	o.wg.Wait()
	if o.Out != nil {
		fmt.Fprintln(o.Out)
	}
}

// StrongRandom draws a "STRONG" random integer of the given bit length.
// It is used for the ECDSA per-signature nonce (§9: kept distinct from
// the VERY_STRONG source used for key generation, rather than silently
// unified, even though both currently draw from the same CSPRNG).
func StrongRandom(bits int) (*bignum.Int, error) {
	n := bignum.NewInt()
	if err := n.Rand(bits, rand.Reader); err != nil {
		return nil, err
	}
	return n, nil
}

// VeryStrongRandom draws a "VERY_STRONG" random integer of the given bit
// length, used for private-key and ECIES ephemeral-key generation.
func VeryStrongRandom(bits int) (*bignum.Int, error) {
	n := bignum.NewInt()
	if err := n.Rand(bits, rand.Reader); err != nil {
		return nil, err
	}
	return n, nil
}
