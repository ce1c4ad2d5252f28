package main

import (
	"fmt"
	"log"
	"os"

	"ahorros.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = generateHash
	fatalfFn       = log.Fatalf
)

func resolvePassword(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return os.Getenv("ADMIN_PASSWORD")
}

func generateHash(password string) (string, error) {
	if len(password) < crypto.MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", crypto.MinPasswordLength)
	}
	return crypto.HashPassword(password)
}

// hash-gen prints the bcrypt hash of a password for manual account recovery
func main() {
	password := resolvePassword(os.Args[1:])

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("Bcrypt Hash: %s\n", hash)
}
