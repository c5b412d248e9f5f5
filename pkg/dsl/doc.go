/*
Package dsl provides a fluent Go builder for Waypoint tours.

It allows tour authors to describe steps with a type-safe builder instead of
hand-assembling domain.Step values, and ships the hook helpers most steps need
(navigate then wait for the next target, block interaction while a step is
shown).

Example usage:

	reg.Register("students", func(nav ports.NavigationBridge, h ports.Handle) ([]domain.Step, error) {
		b := dsl.New()

		b.Add("#nav-students").
			Title("Student records").
			Text("All welfare cases start from a **student record**.").
			Placement("right-start").
			Navigate(nav, "/students")

		b.Add("#students-new").
			Title("Add a student").
			Text("Use this button to register a new student.").
			DisableTarget(h)

		return b.Steps()
	})
*/
package dsl
