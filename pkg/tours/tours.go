// Package tours holds the onboarding tours shipped with the application.
package tours

import (
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/dsl"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/aretw0/waypoint/pkg/registry"
)

// Tour IDs.
const (
	Setup     = "setup"
	Dashboard = "dashboard"
)

// Routes visited by the setup tour.
const (
	RouteDashboard    = "/dashboard"
	RouteStudents     = "/students"
	RouteAppointments = "/appointments"
	RouteTrainings    = "/trainings"
	RouteReports      = "/reports"
)

// Register adds the built-in tours to reg.
func Register(reg *registry.Registry) {
	reg.Register(Setup, SetupSteps)
	reg.Register(Dashboard, DashboardSteps)
}

// SetupSteps is the first-run tour. It walks a new user from the dashboard
// through student records, appointments and trainings to the reports screen,
// navigating between screens as the user advances or goes back.
func SetupSteps(nav ports.NavigationBridge, h ports.Handle) ([]domain.Step, error) {
	b := dsl.New()

	b.Add("").
		ID("welcome").
		Title("Welcome").
		Text("This short tour shows where everything lives. You can leave it at any time and restart it from the help menu.")

	b.Add("#dashboard-summary").
		ID("dashboard").
		Title("Your dashboard").
		Text("Open cases, upcoming appointments and recent activity are summarised here.").
		Placement("bottom-start").
		Navigate(nav, RouteStudents)

	b.Add("#student-list").
		ID("students").
		Title("Student records").
		Text("Every student you follow is listed here. Use **New student** to create a record.").
		Placement("right-start").
		NavigateBack(nav, RouteDashboard)

	b.Add("#new-student").
		ID("new-student").
		Title("Create a record").
		Text("Records hold contact details, case notes and attachments. Try it once the tour is over.").
		Placement("left-center").
		DisableTarget(h).
		Navigate(nav, RouteAppointments)

	b.Add("#appointment-calendar").
		ID("appointments").
		Title("Appointments").
		Text("Schedule meetings with students and families. Reminders are sent automatically.").
		Placement("top-start").
		Navigate(nav, RouteTrainings).
		NavigateBack(nav, RouteStudents)

	b.Add("#training-list").
		ID("trainings").
		Title("Trainings").
		Text("Register the workshops and trainings you run so they show up in your reports.").
		Placement("right-start").
		Navigate(nav, RouteReports).
		NavigateBack(nav, RouteAppointments)

	b.Add("#report-builder").
		ID("reports").
		Title("Statistical reports").
		Text("Build the *monthly* and *annual* reports from the records you keep. That's it, you're all set!").
		Placement("top-center").
		NavigateBack(nav, RouteTrainings)

	return b.Steps()
}

// DashboardSteps is a short tour of the dashboard widgets. It never leaves
// the current screen.
func DashboardSteps(nav ports.NavigationBridge, h ports.Handle) ([]domain.Step, error) {
	b := dsl.New()

	b.Add("#dashboard-summary").
		ID("summary").
		Title("Summary").
		Text("Counts of open cases and pending follow-ups.")

	b.Add("#upcoming-appointments").
		ID("upcoming").
		Title("Upcoming appointments").
		Text("Your next meetings, earliest first.").
		Placement("left-start")

	b.Add("#recent-activity").
		ID("activity").
		Title("Recent activity").
		Text("Changes made by you and your colleagues.").
		Placement("top-start")

	return b.Steps()
}
