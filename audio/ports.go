package audio

import (
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// OutPorts lists MIDI output port names. The scan runs with a timeout because
// CoreMIDI can hang when the MIDI server is wedged.
func OutPorts() []string {
	ch := make(chan []string, 1)
	go func() {
		var names []string
		for _, p := range gomidi.GetOutPorts() {
			names = append(names, p.String())
		}
		ch <- names
	}()

	select {
	case names := <-ch:
		return names
	case <-time.After(3 * time.Second):
		return nil
	}
}
