// Standalone runner that brings up the service and its database in
// containers for manual testing. Ctrl-C tears everything down.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/evalsec/cyberassess/tests/helpers"
)

func main() {
	envFile := flag.String("f", "", "env file to load before starting containers")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-f envfile]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Starts the database and service containers, prints the server URL,")
		fmt.Fprintln(os.Stderr, "and waits for SIGINT/SIGTERM to terminate them.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", *envFile, err)
			os.Exit(1)
		}
	}

	containers, err := helpers.CreateAllTestContainers(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start containers: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Containers running, server at %s\n", containers.ServerURL)
	fmt.Println("Press Ctrl-C to terminate")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	fmt.Println("Terminating containers...")
	containers.Terminate(nil)
}
