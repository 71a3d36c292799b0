package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"saraban-stamp/internal/service"
)

func main() {
	install := flag.Bool("install", false, "Install and start the Windows service")
	uninstall := flag.Bool("uninstall", false, "Stop and uninstall the Windows service")
	start := flag.Bool("start", false, "Start the service")
	stop := flag.Bool("stop", false, "Stop the service")
	debug := flag.Bool("debug", false, "Run under the service debug runner")
	version := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *version {
		fmt.Printf("Saraban Stamp Service %s\n", service.Version)
		return
	}

	exePath, err := os.Executable()
	if err != nil {
		log.Fatal(err)
	}

	// config.yaml is looked up next to the executable, as services start in system32.
	if err := os.Chdir(filepath.Dir(exePath)); err != nil {
		log.Printf("Warning: could not change to executable directory: %v", err)
	}

	switch {
	case *install:
		must(service.InstallService(exePath), "install service")
		fmt.Println("Service installed successfully")
		if err := service.StartService(); err != nil {
			log.Printf("Warning: failed to start service: %v", err)
			fmt.Println("You may need to start the service manually")
			return
		}
		fmt.Println("Service started")

	case *uninstall:
		_ = service.StopService()
		must(service.UninstallService(), "uninstall service")
		fmt.Println("Service uninstalled successfully")

	case *start:
		must(service.StartService(), "start service")
		fmt.Println("Service started")

	case *stop:
		must(service.StopService(), "stop service")
		fmt.Println("Service stopped")

	default:
		run(*debug)
	}
}

func run(debug bool) {
	isService, err := service.IsWindowsService()
	if err != nil {
		log.Printf("Warning: could not determine if running as service: %v", err)
	}

	app := service.NewApplication()
	switch {
	case isService:
		service.RunService(false, app)
	case debug:
		service.RunService(true, app)
	default:
		fmt.Printf("Saraban Stamp Service %s\n", service.Version)
		fmt.Println("Running in console mode. Press Ctrl+C to stop.")
		fmt.Println()
		flag.Usage()
		fmt.Println()
		app.Run()
	}
}

func must(err error, action string) {
	if err != nil {
		log.Fatalf("Failed to %s: %v", action, err)
	}
}
