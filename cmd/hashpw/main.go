// Command hashpw prints a bcrypt hash for ADMIN_PASSWORD_HASH.
package main

import (
	"flag"
	"fmt"
	"os"

	"aaamo-store/internal/service"
)

func main() {
	password := flag.String("password", "", "admin password to hash")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "usage: hashpw -password <password>")
		os.Exit(2)
	}

	hash, err := service.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
