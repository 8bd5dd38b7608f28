// Command resumechat is a terminal chat client for a résumé assistant backend.
package main

import "github.com/diogo/resumechat/internal/commands"

func main() {
	commands.Execute()
}
