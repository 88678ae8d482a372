package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"rallyround/internal/utils"
	"rallyround/internal/utils/logger"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Small operator CLI: hash a password for SUPERADMIN_PASSWORD, verify a
// hash, or mint an invite code without going through the API.
func main() {
	var log = logger.New("helper")
	log.Info("🔑 Starting credentials helper CLI")

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file loaded: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Enter 'h' to hash a password, 'v' to verify, 'i' for an invite code, or 'q' to quit: ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)

		if choice == "q" {
			log.Info("👋 Exiting helper CLI")
			break
		}

		switch choice {
		case "h":
			fmt.Print("Enter the password to hash: ")
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(input)

			hashed, err := bcrypt.GenerateFromPassword([]byte(input), bcrypt.DefaultCost)
			if err != nil {
				log.Error("❌ Hashing failed", err)
			} else {
				log.Success("✅ Hash: %s", string(hashed))
			}
		case "v":
			fmt.Print("Enter the hash: ")
			hash, _ := reader.ReadString('\n')
			fmt.Print("Enter the password: ")
			password, _ := reader.ReadString('\n')

			err := bcrypt.CompareHashAndPassword(
				[]byte(strings.TrimSpace(hash)),
				[]byte(strings.TrimSpace(password)),
			)
			if err != nil {
				log.Warn("Password does not match")
			} else {
				log.Success("✅ Password matches")
			}
		case "i":
			code, err := utils.GenerateRandomString(32)
			if err != nil {
				log.Error("❌ Failed to generate invite code", err)
			} else {
				log.Success("✅ Invite code: %s", code)
			}
		default:
			log.Warn("Unknown choice %q", choice)
		}
	}
}
