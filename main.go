package main

import (
	"github.com/brk3/mindtrack/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// a .env file is optional
	_ = godotenv.Load()

	cmd.Execute()
}
