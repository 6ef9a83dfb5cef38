/*
Copyright © 2025 Arved Viehweger
*/
package main

import (
	"github.com/arvedviehweger/sieve/cmd"
)

func main() {
	cmd.Execute()
}
