// Package notify sends desktop notifications for connection events over
// D-Bus (org.freedesktop.Notifications). Notification delivery is best
// effort: a headless host has no session bus, and that must never fail a
// VPN operation.
package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/ocmgr/common"
)

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = "org.freedesktop.Notifications.Notify"
)

// Send displays a desktop notification with the given title and message.
func Send(title, message string) error {
	return SendWithIcon(title, message, "network-vpn")
}

// SendWithIcon displays a desktop notification with a custom icon name.
func SendWithIcon(title, message, icon string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	obj := conn.Object(notifyService, dbus.ObjectPath(notifyPath))
	call := obj.Call(notifyInterface, 0,
		common.AppName, // app_name
		uint32(0),      // replaces_id
		icon,           // app_icon
		title,          // summary
		message,        // body
		[]string{},     // actions
		map[string]dbus.Variant{}, // hints
		int32(common.NotifyTimeout.Milliseconds()), // expire_timeout
	)
	if call.Err != nil {
		return fmt.Errorf("failed to send notification: %w", call.Err)
	}
	return nil
}

// TrySend sends a notification and logs failures instead of returning them.
func TrySend(title, message string) {
	if err := Send(title, message); err != nil {
		common.LogDebug("notification not delivered: %v", err)
	}
}
