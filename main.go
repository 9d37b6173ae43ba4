package main

import "github.com/frahmantamala/trip-management/cmd"

func main() {
	cmd.Execute()
}
