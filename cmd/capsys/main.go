// Command capsys generates capability-registry source code from system
// manifests.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
