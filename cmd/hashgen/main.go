// hashgen prints the two secrets a deployment needs: a bcrypt hash of the
// admin password and a random JWT signing key. Neither is stored anywhere by
// this tool.
package main

import (
	"fmt"
	"os"

	"breakpoint/internal/admin/secrets"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashgen <admin-password>")
		os.Exit(2)
	}

	hash, err := secrets.Hash(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	key, err := secrets.GenerateSigningKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate signing key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Add these to the server environment (or .env file):")
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
	fmt.Printf("JWT_SECRET=%s\n", key)
}
