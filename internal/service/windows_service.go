//go:build windows
// +build windows

package service

import (
	"fmt"
	"time"

	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/debug"
	"golang.org/x/sys/windows/svc/eventlog"
	"golang.org/x/sys/windows/svc/mgr"
)

const (
	ServiceName        = "SarabanStamp"
	ServiceDisplayName = "Saraban Stamp Service"
	ServiceDescription = "Stamps registry numbers and commands onto Thai official documents and composes leave forms"
)

var elog debug.Log

// stampService adapts Application to the service control manager.
type stampService struct {
	app *Application
}

func (s *stampService) Execute(args []string, r <-chan svc.ChangeRequest, changes chan<- svc.Status) (bool, uint32) {
	const accepted = svc.AcceptStop | svc.AcceptShutdown
	changes <- svc.Status{State: svc.StartPending}

	go s.app.Run()

	changes <- svc.Status{State: svc.Running, Accepts: accepted}
	elog.Info(1, fmt.Sprintf("%s service started", ServiceName))

	for c := range r {
		switch c.Cmd {
		case svc.Interrogate:
			changes <- c.CurrentStatus
		case svc.Stop, svc.Shutdown:
			elog.Info(1, fmt.Sprintf("%s service stopping", ServiceName))
			changes <- svc.Status{State: svc.StopPending}
			s.app.Shutdown()
			s.app.Wait()
			return false, 0
		default:
			elog.Error(1, fmt.Sprintf("unexpected control request #%d", c))
		}
	}
	return false, 0
}

// RunService runs the application under the service control manager, or under
// the debug runner when isDebug is set.
func RunService(isDebug bool, app *Application) {
	var err error
	if isDebug {
		elog = debug.New(ServiceName)
	} else {
		elog, err = eventlog.Open(ServiceName)
		if err != nil {
			return
		}
	}
	defer elog.Close()

	run := svc.Run
	if isDebug {
		run = debug.Run
	}

	elog.Info(1, fmt.Sprintf("starting %s service", ServiceName))
	if err := run(ServiceName, &stampService{app: app}); err != nil {
		elog.Error(1, fmt.Sprintf("%s service failed: %v", ServiceName, err))
		return
	}
	elog.Info(1, fmt.Sprintf("%s service stopped", ServiceName))
}

// withService connects to the service manager and opens the installed service.
func withService(fn func(s *mgr.Service) error) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(ServiceName)
	if err != nil {
		return fmt.Errorf("service %s not installed: %w", ServiceName, err)
	}
	defer s.Close()

	return fn(s)
}

// InstallService registers exePath as an auto-start service that restarts on failure.
func InstallService(exePath string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	if s, err := m.OpenService(ServiceName); err == nil {
		s.Close()
		return fmt.Errorf("service %s already exists", ServiceName)
	}

	s, err := m.CreateService(ServiceName, exePath, mgr.Config{
		DisplayName: ServiceDisplayName,
		Description: ServiceDescription,
		StartType:   mgr.StartAutomatic,
	})
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer s.Close()

	if err := eventlog.InstallAsEventCreate(ServiceName, eventlog.Error|eventlog.Warning|eventlog.Info); err != nil {
		fmt.Printf("Warning: could not install event log source: %v\n", err)
	}

	// Restart after 5s, 10s, then 30s; the failure count resets after a day.
	if err := s.SetRecoveryActions([]mgr.RecoveryAction{
		{Type: mgr.ServiceRestart, Delay: 5 * time.Second},
		{Type: mgr.ServiceRestart, Delay: 10 * time.Second},
		{Type: mgr.ServiceRestart, Delay: 30 * time.Second},
	}, 86400); err != nil {
		fmt.Printf("Warning: failed to set recovery actions: %v\n", err)
	}
	return nil
}

func UninstallService() error {
	return withService(func(s *mgr.Service) error {
		_ = eventlog.Remove(ServiceName)
		return s.Delete()
	})
}

func StartService() error {
	return withService(func(s *mgr.Service) error {
		return s.Start()
	})
}

func StopService() error {
	return withService(func(s *mgr.Service) error {
		_, err := s.Control(svc.Stop)
		return err
	})
}

func IsWindowsService() (bool, error) {
	return svc.IsWindowsService()
}
