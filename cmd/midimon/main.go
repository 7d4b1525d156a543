// midimon is a small MIDI debugging utility: list ports, watch incoming
// messages, or push a test note through the scheduler.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-accompany/midi"
	"go-accompany/sched"
)

func main() {
	defer gomidi.CloseDriver()

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "monitor":
		if len(os.Args) < 3 {
			usage()
			return
		}
		monitor(os.Args[2])
	case "probe":
		if len(os.Args) < 3 {
			usage()
			return
		}
		probe(os.Args[2])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("midimon - MIDI port utility")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list            - list all MIDI ports")
	fmt.Println("  monitor <port>  - print incoming messages on a port")
	fmt.Println("  probe <port>    - send a test note to a port")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	for i, name := range midi.InPortNames() {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range midi.OutPortNames() {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func monitor(portName string) {
	var found bool
	for _, p := range gomidi.GetInPorts() {
		if p.String() == portName {
			found = true
			stop, err := gomidi.ListenTo(p, func(msg gomidi.Message, timestampms int32) {
				fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), msg.String())
			})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			defer stop()
			break
		}
	}
	if !found {
		fmt.Printf("Input port %q not found\n", portName)
		return
	}

	fmt.Printf("Monitoring %q - Ctrl+C to exit\n", portName)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}

func probe(portName string) {
	send, err := midi.OpenSender(portName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	s := sched.New()
	s.SetSender(send)

	fmt.Printf("Sending middle C to %q\n", portName)
	if err := s.Submit(gomidi.NoteOn(0, 60, 100), gomidi.NoteOff(0, 60), 500*time.Millisecond); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	time.Sleep(700 * time.Millisecond)
	s.Stop()
	fmt.Println("Done!")
}
