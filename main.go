package main

import "github.com/frahmantamala/construction-backoffice/cmd"

func main() {
	cmd.Execute()
}
