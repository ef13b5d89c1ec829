package main

import app "github.com/dbessono/sigtest/internal/app"

func main() {
	app.Run()
}
