package editor

import (
	"notefield/debug"
	"notefield/schedule"
)

// TogglePlayback starts the transport, or arms an orderly stop on the next
// scheduler tick.
func (ed *Editor) TogglePlayback() {
	if ed.playing {
		ed.stopPlayback()
		return
	}
	ed.startPlayback()
}

func (ed *Editor) Playing() bool { return ed.playing }

// startPlayback builds a fresh scheduler, resets the audio clock, and commits
// every note's on/off pair at its exact time. The scheduler fires them as the
// clock ticks.
func (ed *Editor) startPlayback() {
	ed.sched = schedule.New(ed.resolution)
	ed.clock.Reset()
	spb := 60.0 / float64(ed.Tempo)

	for i, n := range ed.Score.Sorted() {
		id, note := i, n
		ed.sched.Schedule(note.Start*spb, func(float64) {
			ed.sounder.NoteOn(id, note.Pitch, note.Velocity)
		})
		ed.sched.Schedule(note.End()*spb, func(float64) {
			ed.sounder.NoteOff(id)
		})
	}

	// Auto-stop just past the end of the score.
	end := ed.Score.Length*spb + ed.resolution
	ed.sched.Schedule(end, func(float64) {
		ed.stopPlayback()
	})

	ed.playing = true
	debug.Log("transport", "play %d notes, tempo=%d", len(ed.Score.Notes), ed.Tempo)
}

// stopPlayback arms cleanup on the next tick so the stop lands on the
// scheduler's own timeline, never before events already due.
func (ed *Editor) stopPlayback() {
	if ed.sched == nil {
		ed.playing = false
		return
	}
	ed.sched.Stop(func(now float64) {
		ed.sounder.AllOff()
		ed.playing = false
		debug.Log("transport", "stopped at %.3fs", now)
	})
}

// TickAudio drives one scheduler tick from the host's audio-clock callback.
func (ed *Editor) TickAudio() {
	if ed.sched == nil {
		return
	}
	ed.sched.Tick(ed.clock.Now())
	if !ed.playing {
		ed.sched = nil
	}
}

// PlayheadBeat returns the transport position in beats, or -1 when stopped.
func (ed *Editor) PlayheadBeat() float64 {
	if !ed.playing || ed.sched == nil {
		return -1
	}
	return ed.sched.Now() / (60.0 / float64(ed.Tempo))
}

// ScheduledEvents reports how many on/off callbacks are still pending.
func (ed *Editor) ScheduledEvents() int {
	if ed.sched == nil {
		return 0
	}
	return ed.sched.Pending()
}
