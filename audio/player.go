// Package audio turns logical note on/off actions into MIDI output. Exact
// rational pitches are rendered as nearest-note-plus-bend, one voice per MIDI
// channel so simultaneous bends never collide.
package audio

import (
	"math/big"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"

	"notefield/debug"
)

// voice is one sounding note.
type voice struct {
	channel uint8
	note    uint8
}

// Player sends note on/off with per-voice pitch bend through a lazily opened
// MIDI output port.
type Player struct {
	tuning Tuning

	portName string
	senders  map[string]func(gomidi.Message) error
	mu       sync.RWMutex

	voices map[int]voice
	nextCh int
}

func NewPlayer(tuning Tuning) *Player {
	return &Player{
		tuning:  tuning,
		senders: make(map[string]func(gomidi.Message) error),
		voices:  make(map[int]voice),
	}
}

// SetPort selects the MIDI output port by name. The port is opened on first
// use.
func (p *Player) SetPort(name string) {
	p.mu.Lock()
	p.portName = name
	p.mu.Unlock()
}

// getSender returns a sender for the configured port, lazily opening it.
func (p *Player) getSender() func(gomidi.Message) error {
	p.mu.RLock()
	name := p.portName
	if name == "" {
		p.mu.RUnlock()
		return nil
	}
	if sender, ok := p.senders[name]; ok {
		p.mu.RUnlock()
		return sender
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if sender, ok := p.senders[name]; ok {
		return sender
	}
	for _, port := range gomidi.GetOutPorts() {
		if port.String() == name {
			sender, err := gomidi.SendTo(port)
			if err != nil {
				debug.Warn("audio", "open port %q: %v", name, err)
				return nil
			}
			p.senders[name] = sender
			return sender
		}
	}
	debug.Warn("audio", "port %q not found", name)
	return nil
}

// allocChannel hands out channels round-robin, skipping the GM percussion
// channel.
func (p *Player) allocChannel() uint8 {
	for {
		ch := uint8(p.nextCh % 16)
		p.nextCh++
		if ch == 9 {
			continue
		}
		return ch
	}
}

// NoteOn starts a voice for the given id at an exact pitch ratio.
func (p *Player) NoteOn(id int, ratio *big.Rat, velocity uint8) {
	sender := p.getSender()
	if sender == nil {
		return
	}
	if v, ok := p.voices[id]; ok {
		sender(gomidi.NoteOff(v.channel, v.note))
	}

	note, bend := p.tuning.NoteAndBend(ratio)
	ch := p.allocChannel()
	p.voices[id] = voice{channel: ch, note: note}

	sender(gomidi.Pitchbend(ch, bend))
	sender(gomidi.NoteOn(ch, note, velocity))
	debug.Log("audio", "on id=%d ch=%d note=%d bend=%d", id, ch, note, bend)
}

// NoteOff stops the voice started under id.
func (p *Player) NoteOff(id int) {
	v, ok := p.voices[id]
	if !ok {
		return
	}
	delete(p.voices, id)

	sender := p.getSender()
	if sender == nil {
		return
	}
	sender(gomidi.NoteOff(v.channel, v.note))
	debug.Log("audio", "off id=%d ch=%d note=%d", id, v.channel, v.note)
}

// AllOff silences every sounding voice.
func (p *Player) AllOff() {
	sender := p.getSender()
	for id, v := range p.voices {
		if sender != nil {
			sender(gomidi.NoteOff(v.channel, v.note))
		}
		delete(p.voices, id)
	}
}
