//go:build !windows
// +build !windows

package service

import "errors"

// ErrUnsupported is returned by service management commands outside Windows,
// where a process supervisor (systemd, launchd) owns the lifecycle instead.
var ErrUnsupported = errors.New("service management is only available on Windows")

// RunService runs the application in the foreground.
func RunService(_ bool, app *Application) {
	app.Run()
}

func InstallService(string) error { return ErrUnsupported }

func UninstallService() error { return ErrUnsupported }

func StartService() error { return ErrUnsupported }

func StopService() error { return ErrUnsupported }

// IsWindowsService is always false outside Windows.
func IsWindowsService() (bool, error) {
	return false, nil
}
