package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNewWorkerPoolDefaults(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 3, 3},
		{"zero uses GOMAXPROCS", 0, runtime.GOMAXPROCS(0)},
		{"negative uses GOMAXPROCS", -2, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewWorkerPool(tt.workers)
			defer p.Close()
			if got := p.Workers(); got != tt.want {
				t.Errorf("Workers() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExecuteAllRunsEveryItem(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	const n = 200
	var count atomic.Int64
	results := make([]int, n)
	work := make([]func(), n)
	for i := range work {
		work[i] = func() {
			results[i] = i * i
			count.Add(1)
		}
	}
	p.ExecuteAll(work)

	if got := count.Load(); got != n {
		t.Fatalf("ran %d items, want %d", got, n)
	}
	for i, v := range results {
		if v != i*i {
			t.Errorf("results[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestExecuteAllAfterClose(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()
	p.Close()
	if p.IsRunning() {
		t.Fatal("IsRunning() = true after Close")
	}

	var count atomic.Int64
	p.ExecuteAll([]func(){
		func() { count.Add(1) },
		func() { count.Add(1) },
	})
	if got := count.Load(); got != 2 {
		t.Errorf("ran %d items after Close, want 2", got)
	}
}

func TestExecuteAllEmpty(t *testing.T) {
	p := NewWorkerPool(1)
	defer p.Close()
	p.ExecuteAll(nil)
}
