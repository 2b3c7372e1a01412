package domain

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestMessageState_ReadWrite(t *testing.T) {
	s := NewMessageState(DefaultMessage)

	if got := s.Read(); got != DefaultMessage {
		t.Errorf("initial Read() = %q, want %q", got, DefaultMessage)
	}

	s.Write("hello")
	if got := s.Read(); got != "hello" {
		t.Errorf("Read() after Write = %q, want %q", got, "hello")
	}

	s.Write("")
	if got := s.Read(); got != "" {
		t.Errorf("Read() after empty Write = %q, want empty", got)
	}
}

func TestMessageState_ConcurrentWriters(t *testing.T) {
	s := NewMessageState(DefaultMessage)

	const writers = 64
	values := make(map[string]bool, writers)
	for i := 0; i < writers; i++ {
		// long values make torn writes detectable
		values[strings.Repeat(fmt.Sprintf("w%02d", i), 500)] = true
	}

	var wg sync.WaitGroup
	for v := range values {
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			s.Write(v)
		}(v)
	}

	// concurrent readers must only ever see the initial value or a full write
	stop := make(chan struct{})
	readErr := make(chan string, 1)
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			got := s.Read()
			if got != DefaultMessage && !values[got] {
				select {
				case readErr <- got:
				default:
				}
				return
			}
		}
	}()

	wg.Wait()
	close(stop)

	select {
	case bad := <-readErr:
		t.Fatalf("observed torn value of length %d", len(bad))
	default:
	}

	final := s.Read()
	if !values[final] {
		t.Fatalf("final value is not one of the written values (len %d)", len(final))
	}
	for i := 0; i < 10; i++ {
		if got := s.Read(); got != final {
			t.Fatalf("subsequent Read() = %q, want stable %q", got[:8], final[:8])
		}
	}
}
