package main

import "github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/cmd"

func main() {
	cmd.Execute()
}
