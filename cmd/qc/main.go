package main

import "questchronicles/cmd/qc/root"

func main() {
	root.Execute()
}
