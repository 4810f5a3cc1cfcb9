package main

import "github.com/frahmantamala/enterprise-admin/cmd"

func main() {
	cmd.Execute()
}
