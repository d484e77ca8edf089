package main

import (
	"crypto/rand"
	"os"

	"github.com/D13ya/pqsig/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], cli.Env{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Rand:   rand.Reader,
	}))
}
