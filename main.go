/*
Copyright © 2025 tieubaoca
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/tieubaoca/roskai-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// .env is optional; GEMINI_API_KEY may come from the real environment.
	_ = godotenv.Load()
}
