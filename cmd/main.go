package main

import (
	"go.uber.org/fx"

	"saraban-stamp/internal/service"
)

func main() {
	fx.New(service.Modules).Run()
}
