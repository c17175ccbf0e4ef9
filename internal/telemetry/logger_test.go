package telemetry

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	Start()
	code := m.Run()
	Stop()
	os.Exit(code)
}

func TestTailReturnsRecentEntries(t *testing.T) {
	for i := 0; i < 100; i++ {
		Infof("entry %d", i)
	}
	time.Sleep(50 * time.Millisecond) // let the drain goroutine catch up

	tail := Tail(10)
	if len(tail) != 10 {
		t.Fatalf("Tail(10) returned %d entries", len(tail))
	}
	if !strings.Contains(tail[len(tail)-1], "entry 99") {
		t.Fatalf("last tail entry = %q", tail[len(tail)-1])
	}
}

func TestTailBounds(t *testing.T) {
	Infof("bounds probe")
	time.Sleep(20 * time.Millisecond)

	if got := Tail(0); got != nil {
		t.Fatalf("Tail(0) = %v, want nil", got)
	}
	if got := Tail(ringCap * 2); len(got) > ringCap {
		t.Fatalf("Tail must cap at the ring size, got %d", len(got))
	}
}

func TestDebugGate(t *testing.T) {
	EnableDebug(false)
	if DebugOn() {
		t.Fatal("debug should be off")
	}
	Debugf("dropped %d", 1) // must not panic or block

	EnableDebug(true)
	defer EnableDebug(false)
	if !DebugOn() {
		t.Fatal("debug should be on")
	}
}

func TestConcurrentLoggingDoesNotBlock(t *testing.T) {
	var wg sync.WaitGroup
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := 0; j < 5000; j++ {
					Infof("worker %d message %d", id, j)
				}
			}(i)
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("logging blocked under load")
	}
}
