// midiprobe is a small utility for checking the MIDI path without starting
// the editor: list output ports, or play a just-intonation arpeggio through
// the same player and scheduler the editor uses.
package main

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"notefield/audio"
	"notefield/schedule"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "tone":
		playTone()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("midiprobe - MIDI path checks")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list         - list MIDI output ports")
	fmt.Println("  tone [port]  - play a just arpeggio through the given (or first) port")
}

func listPorts() {
	ports := audio.OutPorts()
	if len(ports) == 0 {
		fmt.Println("no MIDI output ports (or the MIDI server is hung)")
		return
	}
	fmt.Println("=== MIDI Output Ports ===")
	for i, name := range ports {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func playTone() {
	ports := audio.OutPorts()
	if len(ports) == 0 {
		fmt.Println("no MIDI output ports")
		return
	}
	port := ports[0]
	if len(os.Args) > 2 {
		port = os.Args[2]
	}
	fmt.Printf("playing on %q\n", port)

	player := audio.NewPlayer(audio.DefaultTuning())
	player.SetPort(port)

	// 1/1, 5/4, 3/2, 2/1 - half a second each.
	ratios := []*big.Rat{
		big.NewRat(1, 1),
		big.NewRat(5, 4),
		big.NewRat(3, 2),
		big.NewRat(2, 1),
	}

	const resolution = 0.01
	sched := schedule.New(resolution)
	clock := audio.NewClock()

	for i, r := range ratios {
		id, ratio := i, r
		at := float64(i) * 0.5
		sched.Schedule(at, func(float64) {
			player.NoteOn(id, ratio, 100)
		})
		sched.Schedule(at+0.45, func(float64) {
			player.NoteOff(id)
		})
	}

	done := make(chan struct{})
	sched.Schedule(float64(len(ratios))*0.5, func(float64) {
		sched.Stop(func(float64) {
			player.AllOff()
			close(done)
		})
	})

	ticker := time.NewTicker(time.Duration(resolution * float64(time.Second)))
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sched.Tick(clock.Now())
		case <-done:
			return
		}
	}
}
