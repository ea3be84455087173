package main

import (
	"github.com/joho/godotenv"

	"ss-quote/go_backend/internal/app"
)

func main() {
	_ = godotenv.Load()
	app.Run()
}
