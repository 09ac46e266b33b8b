// Command logfsm converts semi-structured log lines into JSON Lines.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
