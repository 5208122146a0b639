// Command cmsctl runs maintenance tasks against the simple-cms database:
// schema migrations, demo data and shared-secret generation.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
