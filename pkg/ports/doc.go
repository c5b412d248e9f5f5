/*
Package ports defines the driven ports (interfaces) of the Waypoint controller.

These interfaces decouple the tour state machine from the host application:
how screens change, how highlights are drawn and how the user is asked a
question are all adapter concerns.

# Key Interfaces

  - NavigationBridge: Requests a screen/route change.
  - Renderer: Highlights a step, clears it, and resolves target locators.
  - ConfirmationGate: Asks the user a yes/no question.
  - TourBuilder: Builds the steps of a tour for a given ID.
  - Handle: The view of the controller handed to tour builders.
  - DistributedLocker: Enforces a single active tour across processes.
*/
package ports
