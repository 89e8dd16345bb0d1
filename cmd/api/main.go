package main

import (
	"fmt"
	"os"

	"github.com/eyobt/schoolhub/internal/server"
)

// @title           SchoolHub API
// @version         1.0
// @description     School management backend: accounts with role flags, academic catalog, lecturer course allocation and attendance tracking.

// @contact.name   SchoolHub Support
// @contact.email  support@schoolhub.example

// @license.name  MIT

// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	srv, err := server.NewServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize server: %v\n", err)
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server terminated with error: %v\n", err)
		os.Exit(1)
	}
}
