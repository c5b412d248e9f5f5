/*
Package runner implements the interactive loop that drives a tour from a
line-oriented input, such as a terminal.

It reads one command per line and forwards it to the guide until the tour
is no longer active:

	enter, n, next     advance
	p, b, back         go back
	q, quit, exit      ask to leave the tour
	h, ?, help         list the commands

# Usage

	console := terminal.New(os.Stdin, os.Stdout)
	guide, _ := waypoint.New(
		waypoint.WithNavigator(console),
		waypoint.WithRenderer(console),
		waypoint.WithConfirmationGate(console),
	)

	r := runner.NewRunner(guide, console, runner.WithOutput(os.Stdout))
	if err := r.Run(ctx, tours.Setup); err != nil {
		log.Fatal(err)
	}
*/
package runner
