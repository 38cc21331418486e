package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/kintree/kintree/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	srv := server.NewServer()
	r := srv.SetupRouter()

	port := srv.Config.Server.Port
	if port == "" {
		port = "8080"
	}
	if env := os.Getenv("PORT"); env != "" {
		port = env
	}

	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
