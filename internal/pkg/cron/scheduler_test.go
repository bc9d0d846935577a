package cron

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestScheduler_RunsJobImmediatelyOnStart(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.AddJob("close_sessions", time.Hour, func(ctx context.Context) error {
		ran <- struct{}{}
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run at start")
	}
}

func TestScheduler_KeepsTickingAfterJobError(t *testing.T) {
	s := NewScheduler()
	runs := make(chan struct{}, 4)
	s.AddJob("close_sessions", 10*time.Millisecond, func(ctx context.Context) error {
		select {
		case runs <- struct{}{}:
		default:
		}
		return errors.New("transient failure")
	})

	s.Start()
	defer s.Stop()

	for i := 0; i < 2; i++ {
		select {
		case <-runs:
		case <-time.After(2 * time.Second):
			t.Fatalf("run %d never happened", i+1)
		}
	}
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	s := NewScheduler()
	cancelled := make(chan struct{}, 1)
	s.AddJob("close_sessions", time.Millisecond, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			cancelled <- struct{}{}
		case <-time.After(5 * time.Second):
		}
		return nil
	})

	s.Start()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("job context was not cancelled")
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after jobs finished")
	}
}
