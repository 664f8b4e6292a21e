package main

import (
	"fmt"
	"os"

	"hoteldesk/internal/console"
)

func main() {
	if err := console.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
