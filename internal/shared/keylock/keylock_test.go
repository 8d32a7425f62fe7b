package keylock_test

import (
	"sync"
	"testing"

	"go-payroll-ledger/internal/shared/keylock"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	locks := keylock.New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("emp-1")
			defer unlock()
			v := counter
			v++
			counter = v
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, locks.Len())
}

func TestKeyLock_IndependentKeys(t *testing.T) {
	locks := keylock.New()

	unlockA := locks.Lock("a")
	unlockB := locks.Lock("b")
	assert.Equal(t, 2, locks.Len())

	unlockA()
	unlockA()
	unlockB()
	assert.Equal(t, 0, locks.Len())
}
