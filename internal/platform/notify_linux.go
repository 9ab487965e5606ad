//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const defaultTimeoutMS = 5000

// Notify sends a desktop notification using the Freedesktop.org notification service.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}
	defer conn.Close()

	timeout := opts.TimeoutMS
	if timeout == 0 {
		timeout = defaultTimeoutMS
	}
	hints := map[string]dbus.Variant{}
	if opts.IconPath != "" {
		hints["image-path"] = dbus.MakeVariant(opts.IconPath)
	}
	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		opts.app(), uint32(0), opts.IconPath, title, body, []string{}, hints, timeout)
	return call.Err
}
