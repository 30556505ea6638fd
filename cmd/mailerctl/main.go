// Command mailerctl manages the Mandrill settings record and sends templated
// emails from the command line.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
