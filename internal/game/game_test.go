package game

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestPostTicksSurvivesFullQueue(t *testing.T) {
	beats := make(chan time.Time)
	stop := make(chan struct{})
	done := make(chan struct{})

	var posted []tcell.Event
	post := func(ev tcell.Event) error {
		posted = append(posted, ev)
		if len(posted) == 1 {
			return tcell.ErrEventQFull
		}
		return nil
	}

	go func() {
		defer close(done)
		postTicks(post, beats, stop)
	}()

	beats <- testStart
	beats <- testStart.Add(time.Second)
	close(stop)
	<-done

	if len(posted) != 2 {
		t.Fatalf("posted %d ticks, want 2 after a full queue", len(posted))
	}
	ev, ok := posted[1].(*tcell.EventInterrupt)
	if !ok {
		t.Fatalf("posted %T, want *tcell.EventInterrupt", posted[1])
	}
	if _, ok := ev.Data().(tick); !ok {
		t.Errorf("interrupt data = %T, want tick", ev.Data())
	}
}
