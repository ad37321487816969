package server

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

// Serve listens on addr until a value arrives on quit or the listener fails,
// then shuts the app down. It returns the listener error, if any.
func Serve(app *fiber.App, addr string, quit <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	var serveErr error
	select {
	case <-quit:
		log.Println("Shutting down server...")
	case err := <-listenErr:
		if err != nil {
			log.Printf("Server failed to start: %v", err)
			serveErr = fmt.Errorf("listen on %s: %w", addr, err)
		}
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	return serveErr
}
