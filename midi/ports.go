// Package midi wraps port enumeration and transport over gomidi.
package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// InPortNames lists the available input ports.
func InPortNames() []string {
	var names []string
	for _, p := range gomidi.GetInPorts() {
		names = append(names, p.String())
	}
	return names
}

// OutPortNames lists the available output ports.
func OutPortNames() []string {
	var names []string
	for _, p := range gomidi.GetOutPorts() {
		names = append(names, p.String())
	}
	return names
}

func findIn(name string) (drivers.In, error) {
	for _, p := range gomidi.GetInPorts() {
		if p.String() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("midi: input port %q not found", name)
}

// OpenSender opens the named output port and returns its send function.
func OpenSender(name string) (func(gomidi.Message) error, error) {
	for _, p := range gomidi.GetOutPorts() {
		if p.String() == name {
			return gomidi.SendTo(p)
		}
	}
	return nil, fmt.Errorf("midi: output port %q not found", name)
}
