package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"go-accompany/bayes"
	"go-accompany/debug"
	"go-accompany/perform"
)

// Listen opens the named input port and forwards note-ons. identify maps a
// raw note number to an instrument (None for unmapped notes); identified
// hits go to onHit, every note-on additionally goes to onNote for the UI
// log. Both callbacks run on the driver goroutine and must stay cheap.
// Returns a function that closes the listener.
func Listen(portName string, identify func(note uint8) bayes.Instrument, onHit func(perform.InputEvent), onNote func(note, velocity uint8)) (func(), error) {
	in, err := findIn(portName)
	if err != nil {
		return nil, err
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, key, vel uint8
		if !msg.GetNoteStart(&ch, &key, &vel) {
			return
		}
		if onNote != nil {
			onNote(key, vel)
		}
		if inst := identify(key); inst != bayes.None {
			onHit(perform.InputEvent{Instrument: inst, Velocity: int(vel)})
		}
	})
	if err != nil {
		return nil, err
	}

	debug.Log("midi", "listening on %q", portName)
	return stop, nil
}
