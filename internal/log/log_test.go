package log

import (
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetCapturesEntries(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Set(zap.New(core))
	defer Set(zap.NewNop())

	Infow("run saved", "id", "abc")
	Warnw("series not increasing", "segments", 2)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "run saved" || entries[0].ContextMap()["id"] != "abc" {
		t.Errorf("unexpected entry %+v", entries[0])
	}
	if entries[1].Level != zap.WarnLevel {
		t.Errorf("expected warn level, got %s", entries[1].Level)
	}
}

func TestInit(t *testing.T) {
	defer Set(zap.NewNop())
	for _, debug := range []bool{true, false} {
		if err := Init(debug); err != nil {
			t.Fatalf("init(%v) failed: %v", debug, err)
		}
	}
}

func TestConcurrentLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	defer Set(zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i == 0 {
				Set(zap.New(core))
			}
			Infow("day complete", "worker", i)
		}(i)
	}
	wg.Wait()

	Infow("after")
	if n := logs.FilterMessage("after").Len(); n != 1 {
		t.Errorf("expected entry on the replaced logger, got %d", n)
	}
}
