// main.go
package main

import "github.com/DM20911/Shodan-AI/cmd"

func main() {
	cmd.Execute()
}
