package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/financeflow/internal/auth"
)

// hashPasswordCmd produces the bcrypt hash the auth.password_hash config
// key expects.
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Hash a password for the auth config",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		fmt.Println(hash)
	},
}
