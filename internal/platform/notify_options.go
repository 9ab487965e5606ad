// Package platform sends desktop notifications through the native
// notification service of each operating system.
package platform

// DefaultApp is the application name shown by notification centres.
const DefaultApp = "framepaint"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// App names the sending application. Empty means DefaultApp.
	App string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// TimeoutMS is how long the notification stays up where the platform
	// honours it. Zero uses the platform default.
	TimeoutMS int32
}

func (o Options) app() string {
	if o.App == "" {
		return DefaultApp
	}
	return o.App
}
