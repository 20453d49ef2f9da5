package main

import (
	"github.com/launchdarkly/unit-harness/cli"

	_ "github.com/launchdarkly/unit-harness/selftest"
)

func main() {
	cli.Main()
}
