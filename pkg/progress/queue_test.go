package progress

import (
	"sync"
	"testing"
)

func TestQueue_PublishDrain(t *testing.T) {
	q := NewQueue()

	q.Publish(Event{Stage: StageDiscover, File: "a.geojson", Index: 1, Total: 2})
	q.Publish(Event{Stage: StagePersist, File: "a.geojson", Index: 1, Total: 2})

	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}

	events := q.Drain()
	if len(events) != 2 {
		t.Fatalf("Drain() returned %d events, want 2", len(events))
	}
	if events[0].Stage != StageDiscover || events[1].Stage != StagePersist {
		t.Errorf("events out of order: %v, %v", events[0].Stage, events[1].Stage)
	}
	if events[0].Time.IsZero() {
		t.Error("publish did not stamp event time")
	}

	if q.Len() != 0 {
		t.Errorf("Len() after drain = %d, want 0", q.Len())
	}
	if q.Drain() != nil {
		t.Error("Drain() of empty queue should return nil")
	}
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := NewQueue()

	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				q.Publish(Event{Stage: StageAggregate})
			}
		}()
	}
	wg.Wait()

	if q.Len() != producers*perProducer {
		t.Errorf("Len() = %d, want %d", q.Len(), producers*perProducer)
	}
}
