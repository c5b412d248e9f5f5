/*
Package waypoint is a guided-tour engine for web and terminal front-ends.

A tour is an ordered list of steps. Each step points at an element of the host
interface (or at nothing, for a centred popover), carries a title and a short
description, and may ask the host to change screens when the user moves on or
goes back. The engine owns the session: it runs the step hooks, waits for the
next target to appear after navigation, asks before cancelling mid-tour and
reports exactly one outcome per start request.

# Concept

Waypoint never touches the interface itself. The host supplies adapters for
navigation, rendering and confirmation (see package ports), and the engine
drives them. This keeps the same tours usable from a browser bridge over HTTP,
an AI agent over MCP or a terminal.

# Usage

	guide, err := waypoint.New(
		waypoint.WithBridge(memory.New()),
		waypoint.WithCompletion(func(o domain.Outcome) {
			log.Printf("tour %s ended: %s", o.TourID, o.Reason)
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := guide.Start(ctx, tours.Setup); err != nil {
		log.Fatal(err)
	}
	_ = guide.Advance(ctx)

Tours can be written in Go with package dsl, or declared as data (YAML files
or Markdown documents with front matter) and registered with WithTours,
WithTourFiles or WithMarkdownTours.
*/
package waypoint
