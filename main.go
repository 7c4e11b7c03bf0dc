package main

import "github.com/frahmantamala/financeflow/cmd"

func main() {
	cmd.Execute()
}
